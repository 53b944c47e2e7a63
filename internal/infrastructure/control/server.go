package control

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

const introspection = `
<interface name="` + Interface + `">
  <method name="GetLevel">
    <arg name="level" type="s" direction="out"/>
  </method>
  <method name="SetLevel">
    <arg name="level" type="s" direction="in"/>
  </method>
  <method name="Toggle">
    <arg name="level" type="s" direction="in"/>
    <arg name="current" type="s" direction="out"/>
  </method>
  <method name="ListShortcuts">
    <arg name="shortcuts" type="a(sss)" direction="out"/>
  </method>
  <method name="ConfigureShortcuts"/>
  <method name="Quit"/>
  <signal name="LevelChanged">
    <arg name="level" type="s"/>
  </signal>
</interface>`

// object is the exported D-Bus object. Method sets follow godbus export
// rules: a trailing *dbus.Error result.
type object struct {
	ctx        context.Context
	controller Controller
}

// Server owns BusName and serves the control interface.
type Server struct {
	conn *dbus.Conn
}

// Serve claims BusName on conn and exports the control object. It returns
// ErrAlreadyRunning if another process owns the name.
func Serve(ctx context.Context, conn *dbus.Conn, controller Controller) (*Server, error) {
	log := logging.FromContext(ctx)

	obj := &object{
		ctx:        logging.WithComponent(context.WithoutCancel(ctx), "control"),
		controller: controller,
	}
	if err := conn.Export(obj, ObjectPath, Interface); err != nil {
		return nil, fmt.Errorf("export control object: %w", err)
	}
	xml := introspect.IntrospectDeclarationString + "<node>" + introspection + introspect.IntrospectDataString + "</node>"
	if err := conn.Export(introspect.Introspectable(xml), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return nil, fmt.Errorf("export introspection: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return nil, fmt.Errorf("request name %s: %w", BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner && reply != dbus.RequestNameReplyAlreadyOwner {
		_ = conn.Export(nil, ObjectPath, Interface)
		return nil, ErrAlreadyRunning
	}

	log.Debug().Str("name", BusName).Msg("control: serving")
	return &Server{conn: conn}, nil
}

// EmitLevelChanged broadcasts the LevelChanged signal.
func (s *Server) EmitLevelChanged(level entity.InhibitLevel) error {
	return s.conn.Emit(ObjectPath, Interface+".LevelChanged", level.String())
}

// Close releases BusName and unexports the object.
func (s *Server) Close() error {
	_ = s.conn.Export(nil, ObjectPath, Interface)
	_ = s.conn.Export(nil, ObjectPath, "org.freedesktop.DBus.Introspectable")
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		return fmt.Errorf("release name %s: %w", BusName, err)
	}
	return nil
}

func invalidLevel(err error) *dbus.Error {
	return dbus.NewError(errorInvalidLevel, []interface{}{err.Error()})
}

func failed(err error) *dbus.Error {
	return dbus.NewError(errorFailed, []interface{}{err.Error()})
}

func (o *object) GetLevel() (string, *dbus.Error) {
	return o.controller.Level().String(), nil
}

func (o *object) SetLevel(level string) *dbus.Error {
	parsed, err := entity.ParseInhibitLevel(level)
	if err != nil {
		return invalidLevel(err)
	}
	if err := o.controller.SetLevel(o.ctx, parsed); err != nil {
		return failed(err)
	}
	return nil
}

func (o *object) Toggle(level string) (string, *dbus.Error) {
	parsed, err := entity.ParseInhibitLevel(level)
	if err != nil {
		return "", invalidLevel(err)
	}
	current, err := o.controller.Toggle(o.ctx, parsed)
	if err != nil {
		return current.String(), failed(err)
	}
	return current.String(), nil
}

func (o *object) ListShortcuts() ([]ShortcutRow, *dbus.Error) {
	bound, err := o.controller.ListShortcuts(o.ctx)
	if err != nil {
		return nil, failed(err)
	}
	rows := make([]ShortcutRow, 0, len(bound))
	for _, b := range bound {
		rows = append(rows, ShortcutRow{
			ID:          string(b.ID),
			Description: b.Description,
			Trigger:     b.TriggerDescription,
		})
	}
	return rows, nil
}

func (o *object) ConfigureShortcuts() *dbus.Error {
	if err := o.controller.ConfigureShortcuts(o.ctx); err != nil {
		return failed(err)
	}
	return nil
}

func (o *object) Quit() *dbus.Error {
	logging.FromContext(o.ctx).Info().Msg("control: quit requested")
	o.controller.Quit()
	return nil
}
