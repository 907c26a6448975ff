package notifications

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultTemplates seeds plantillas_correo and backs the restore operation.
// Placeholders use {{nombre}} style markers replaced by Render.
var DefaultTemplates = map[string]Template{
	TypeActivityReminder: {
		Code:    TypeActivityReminder,
		Name:    "Recordatorio de captura de actividades",
		Subject: "Recordatorio: captura tus actividades de la semana {{semana}}",
		Body: "<p>Hola {{nombre}},</p>" +
			"<p>Aún no has completado la captura de actividades de la semana {{semana}}. " +
			"Ingresa a la intranet para registrar tus horas antes del viernes.</p>",
	},
	TypeVacationPending: {
		Code:    TypeVacationPending,
		Name:    "Solicitud de vacaciones recibida",
		Subject: "Nueva solicitud de vacaciones de {{nombre}}",
		Body: "<p>{{nombre}} solicitó {{dias}} día(s) de vacaciones " +
			"del {{fecha_inicio}} al {{fecha_fin}}.</p>",
	},
	TypeVacationApproved: {
		Code:    TypeVacationApproved,
		Name:    "Vacaciones aprobadas",
		Subject: "Tu solicitud de vacaciones fue aprobada",
		Body: "<p>Hola {{nombre}},</p>" +
			"<p>Tu solicitud de vacaciones del {{fecha_inicio}} al {{fecha_fin}} fue aprobada.</p>" +
			"<p>{{comentario}}</p>",
	},
	TypeVacationRejected: {
		Code:    TypeVacationRejected,
		Name:    "Vacaciones rechazadas",
		Subject: "Tu solicitud de vacaciones fue rechazada",
		Body: "<p>Hola {{nombre}},</p>" +
			"<p>Tu solicitud de vacaciones del {{fecha_inicio}} al {{fecha_fin}} fue rechazada.</p>" +
			"<p>Motivo: {{comentario}}</p>",
	},
	TypePayrollReceipt: {
		Code:    TypePayrollReceipt,
		Name:    "Recibo de nómina disponible",
		Subject: "Tu recibo de nómina de {{periodo}} ya está disponible",
		Body: "<p>Hola {{nombre}},</p>" +
			"<p>Tu recibo de nómina de la {{periodo}} de {{mes}}/{{anio}} " +
			"ya está disponible en la intranet.</p>",
	},
	TypeWelcome: {
		Code:    TypeWelcome,
		Name:    "Bienvenida",
		Subject: "Bienvenido a la intranet de {{empresa}}",
		Body: "<p>Hola {{nombre}},</p>" +
			"<p>Tu cuenta de la intranet fue creada. Inicia sesión con tu correo {{email}}.</p>",
	},
	TypePasswordChanged: {
		Code:    TypePasswordChanged,
		Name:    "Contraseña actualizada",
		Subject: "Tu contraseña fue actualizada",
		Body: "<p>Hola {{nombre}},</p>" +
			"<p>Tu contraseña de la intranet fue actualizada. " +
			"Si no reconoces este cambio contacta a recursos humanos.</p>",
	},
}

// Render substitutes {{key}} markers in both subject and body.
func Render(tpl Template, values map[string]string) (subject, body string) {
	subject = tpl.Subject
	body = tpl.Body
	for key, value := range values {
		marker := "{{" + key + "}}"
		subject = strings.ReplaceAll(subject, marker, value)
		body = strings.ReplaceAll(body, marker, value)
	}
	return subject, body
}

// Placeholders lists the distinct {{key}} markers in a template, sorted.
func Placeholders(tpl Template) []string {
	seen := map[string]bool{}
	for _, text := range []string{tpl.Subject, tpl.Body} {
		rest := text
		for {
			start := strings.Index(rest, "{{")
			if start < 0 {
				break
			}
			end := strings.Index(rest[start:], "}}")
			if end < 0 {
				break
			}
			seen[rest[start+2:start+end]] = true
			rest = rest[start+end+2:]
		}
	}
	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// MonthName returns the Spanish month name used in receipt notifications.
func MonthName(month int) string {
	names := []string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if month < 1 || month > 12 {
		return fmt.Sprintf("Mes %d", month)
	}
	return names[month-1]
}
