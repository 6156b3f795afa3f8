package bot

import (
	"fmt"
	"strings"

	"github.com/yourusername/eventos-bot/models"
)

// User-facing texts. All messages are sent with HTML parse mode.

const textCommandList = `/help - Mostrar mensaje de ayuda
/reset - Resetear dialogo
/listevents - Listar los eventos disponibles (admite filtros)
/myinscriptions - Listar inscripciones activas
/myevents - Listar los eventos que organizás
/createevent - Crear un nuevo evento
/logout - Cerrar sesión`

const textChooseAuth = `🔐 <b>Para comenzar, necesitás una cuenta</b>

Elegí una opción:

✍️ A) Registrarme
🔑 B) Iniciar sesión

¿Qué querés hacer?`

const textInvalidChoice = `¡Esa no es una respuesta válida! Para comenzar, necesitás tener una cuenta activa. 🔐
Por favor, elegí una opción para continuar:

A) Registrarme ✍️
B) Iniciar sesión 🔑

¿Qué te gustaría hacer? 💬`

const textChoseRegister = `<b>¡Perfecto! 🎉</b>

Elegiste <i>crear una cuenta nueva</i>.

<b>Para continuar:</b>
Por favor, envíame tu dirección de email 📧`

const textChoseLogin = `<b>✅ ¡Genial!</b>

Veo que ya tenés una cuenta.

<b>Para acceder:</b>
Envíame tu email 📧`

const textAskPassword = `<b>Genial, ya casi estamos 🎯</b>

Ahora necesito tu <b>contraseña</b> 🔒`

const textInvalidEmail = `<b>Email inválido</b>

Por favor, envíame un email correcto:

<code>usuario@gmail.com</code>`

const textInvalidPassword = `<b>Contraseña inválida</b>

Tu contraseña debe tener:
  • Mínimo <b>8 caracteres</b>
  • Al menos <b>una letra</b>
  • Al menos <b>un número</b>

<i>Intentá de nuevo</i> 🔒`

const textAskConfirmPassword = `<b>¡Bien! 👌</b>

Para confirmar, enviame la <b>contraseña nuevamente</b> 🔒`

const textPasswordMismatch = `<b>Las contraseñas no coinciden</b>

Asegurate de escribir la <b>misma contraseña</b> en ambos campos.

<i>Intentá de nuevo</i> 🔒`

const textRegistered = `<b>✅ ¡Listo!</b>

Tu cuenta fue creada <i>correctamente</i>.
<b>Bienvenido</b> 👋`

const textLoggedIn = `<b>✅ ¡Ya estás logueado!</b>

<i>Todo listo para empezar</i> 🎉`

const textLoginFailed = `<b>Error de inicio de sesión</b>

Verificá tu contraseña y envíamela de nuevo 🔒`

const textLoggedOut = `<b>👋 Cerraste sesión</b>

` + textChooseAuth

const textNeedLogin = `🔒 <b>Necesitás estar logueado</b>

Para usar este comando, primero iniciá sesión`

const textGenericError = `⚠️ <b>Error al ejecutar el comando</b>

Ocurrió un problema inesperado.
Intentá nuevamente en unos momentos ⏱️`

const textUnknownCommand = `Comando desconocido. Usá /help para ver los comandos disponibles.`

const textNoEvents = `<b>📅 No hay eventos disponibles</b>

<i>Es posible que los filtros aplicados estén limitando los resultados. Intentá ajustarlos para ver más eventos.</i>`

const textEventsHeader = `<b>📅 Estos son los eventos disponibles</b>

<i>Según los criterios de búsqueda que ingresaste:</i>`

const textNoInscriptions = `<b>✍️ Sin inscripciones activas</b>

<i>Todavía no estás inscrito en ningún evento. ¡Buscá eventos y registrate!</i>`

const textNoMyEvents = `<b>📋 No organizás ningún evento</b>

<i>Usá /createevent para crear el primero.</i>`

const textNoEventInscriptions = `<b>📋 Sin inscripciones</b>

<i>No hay inscripciones para este evento.</i>`

const textEnrolConfirmed = `La inscripción fue generada exitosamente! Acá podés verla:`

const textEnrolRejected = `La inscripción fue rechazada. Puede ser porque el cupo de inscriptos al evento llegó al límite.`

const textEnrolPending = `Tu inscripción está pendiente de ser aprobada o rechazada. ¡Estate atento a su actualización!`

const textInscriptionCancelled = `Inscripción cancelada ✅`

const textEventOpened = `🔓 Inscripciones abiertas ✅`

const textEventClosed = `🔒 Inscripciones cerradas ✅`

const textAskTitle = `Vamos a pedirte la información de tu evento. Para comenzar, ingresá el título.`

const textAskDescription = `¡Buen título! 📝 Ahora ingresá la <b>descripción</b> del evento.`

const textAskDate = `📅 ¿Cuándo empieza? Ingresá la fecha y hora en formato <code>DD-MM-AAAA HH:MM</code>.`

const textAskDuration = `⏱ ¿Cuánto dura? Ingresá la <b>duración en minutos</b>.`

const textAskLocation = `📍 ¿Dónde es? Ingresá la <b>ubicación</b> del evento.`

const textAskCapacity = `👥 Ingresá el <b>cupo máximo</b> de participantes.`

const textAskPrice = `💰 Ingresá el <b>precio</b> de la entrada (0 si es gratis).`

const textInvalidTitle = `<b>Título inválido</b>

El título no puede estar vacío ni superar los 100 caracteres.`

const textInvalidDescription = `<b>Descripción inválida</b>

La descripción no puede estar vacía ni superar los 500 caracteres.`

const textInvalidDuration = `<b>Duración inválida</b>

Ingresá un número entero de minutos entre 1 y 1440.`

const textInvalidLocation = `<b>Ubicación inválida</b>

La ubicación no puede estar vacía.`

const textInvalidCapacity = `<b>Cupo inválido</b>

Ingresá un número entero mayor o igual a 1.`

const textInvalidPrice = `<b>Precio inválido</b>

Ingresá un número mayor o igual a 0.`

const textEventCreated = `<b>✅ ¡Evento creado!</b>`

func textGreeting(name string) string {
	return fmt.Sprintf(`👋 ¡Hola, %s!

Bienvenido al bot de Eventos 🎉

Soy tu asistente para descubrir y participar en eventos.

<b>¿Qué podés hacer?</b>
🔍 Buscar eventos por precio, fecha o categoría
📋 Ver detalles de cada evento
🎟️ Inscribirte a los que te interesen
📅 Consultar tus inscripciones

<b>Comandos disponibles:</b>
%s

%s`, name, textCommandList, textChooseAuth)
}

func textWelcomeBack(name string) string {
	return fmt.Sprintf(`👋 ¡Hola, %s!

Todo listo para seguir usando el bot.

<b>Comandos disponibles:</b>
%s`, name, textCommandList)
}

func textAskCategory() string {
	return fmt.Sprintf(`🏷 Por último, elegí la <b>categoría</b> del evento:

%s`, strings.Join(models.Categories, "\n"))
}

func textInvalidCategory() string {
	return fmt.Sprintf(`<b>Categoría inválida</b>

Elegí una de las siguientes:

%s`, strings.Join(models.Categories, "\n"))
}
