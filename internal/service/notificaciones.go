package service

import (
	"context"
	"fmt"
)

// Notificador abstracts fire-and-forget email dispatch. Implementations push
// onto the async queue; enqueue failures are logged, never surfaced.
type Notificador interface {
	EncolarEmail(ctx context.Context, to, subject, html string)
}

// Mailer is the synchronous send path. Only the status-change flow uses it,
// because that endpoint reports delivery problems back to the caller.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// ─── Cuerpos HTML ────────────────────────────────────────────────────────────

func htmlCuentaPendiente(nombre, rol string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333;">Hola, %s</h2>
  <p>Hemos recibido tu solicitud de registro. Tu cuenta para el rol de <strong>%s</strong> está actualmente pendiente de aprobación por un administrador.</p>
  <p>Te notificaremos por este medio una vez que tu cuenta sea activada.</p>
</div>`, nombre, rol)
}

func htmlBienvenida(nombre string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333; text-align: center;">¡Bienvenido a nuestra plataforma!</h2>
  <p>Hola %s, tu cuenta fue creada exitosamente y ya puedes iniciar sesión.</p>
</div>`, nombre)
}

func htmlNuevoUsuarioAdmin(nombre, email, rol string, pendiente bool) string {
	accion := ""
	if pendiente {
		accion = `<p>Por favor, ve al panel de administración para aprobar o rechazar esta solicitud.</p>`
	}
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h3>Nuevo usuario registrado</h3>
  <p><strong>Nombre:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Rol:</strong> %s</p>
  %s
</div>`, nombre, email, rol, accion)
}

func htmlCuentaActivada(nombre string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333;">Hola, %s</h2>
  <p>Tu cuenta fue aprobada por un administrador. Ya puedes iniciar sesión en la plataforma.</p>
</div>`, nombre)
}

func htmlCuentaRechazada(nombre string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333;">Hola, %s</h2>
  <p>Lamentamos informarte que tu solicitud de registro fue rechazada por un administrador.</p>
</div>`, nombre)
}

func htmlRecuperacionPassword(enlace string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h3>Recuperación de contraseña</h3>
  <p>Recibimos una solicitud para restablecer tu contraseña. El enlace vence en 15 minutos.</p>
  <p><a href="%s">Restablecer contraseña</a></p>
  <p style="color: #777; font-size: 13px;">Si no solicitaste este cambio, ignora este mensaje.</p>
</div>`, enlace)
}

func htmlRegistroMovilizacion(nombre string, movilizacionID uint, enlaceCertificado string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333;">Hola, %s</h2>
  <p style="color: #555;">Tu solicitud de movilización ha sido registrada correctamente.</p>
  <p><strong>Número de solicitud:</strong> #%d</p>
  <p><a href="%s">Descargar certificado</a></p>
  <p style="color: #777; font-size: 14px;">Puedes hacer seguimiento del estado de tu solicitud en la plataforma web.</p>
</div>`, nombre, movilizacionID, enlaceCertificado)
}

func htmlMovilizacionParaRevision(movilizacionID uint, solicitante string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h3>Nueva solicitud de movilización</h3>
  <p><strong>Solicitud:</strong> #%d</p>
  <p><strong>Solicitante:</strong> %s</p>
  <p><strong>Acción requerida:</strong> Nueva solicitud de movilización pendiente de revisión.</p>
  <p style="color: #b45309;"><strong>Recordatorio:</strong> Las solicitudes deben ser revisadas dentro de las 72 horas.</p>
</div>`, movilizacionID, solicitante)
}

func htmlCambioEstado(nombre string, movilizacionID uint, nuevoEstado, observaciones string) string {
	obs := ""
	if observaciones != "" {
		obs = fmt.Sprintf(`<p><strong>Observaciones:</strong> %s</p>`, observaciones)
	}
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333;">Hola, %s</h2>
  <p>El estado de tu movilización <strong>#%d</strong> cambió a <strong>%s</strong>.</p>
  %s
</div>`, nombre, movilizacionID, nuevoEstado, obs)
}

func htmlAlertaPorVencimiento(nombre string, movilizacionID uint) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="color: #333;">Hola, %s</h2>
  <p>Tu movilización <strong>#%d</strong> lleva más de 72 horas sin revisión y pasó al estado <strong>alerta</strong>.</p>
  <p>Un técnico debe resolverla antes de que pueda finalizarse.</p>
</div>`, nombre, movilizacionID)
}
