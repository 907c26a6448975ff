package notifications

const (
	TypeActivityReminder = "recordatorio_actividad"
	TypeVacationPending  = "vacaciones_pendiente"
	TypeVacationApproved = "vacaciones_aprobada"
	TypeVacationRejected = "vacaciones_rechazada"
	TypePayrollReceipt   = "recibo_nomina"
	TypePasswordChanged  = "password_actualizado"
	TypeWelcome          = "bienvenida"
)
