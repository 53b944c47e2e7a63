package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconConfig   = "\ue615" // config
	IconCursor   = "\uf054" // chevron-right
	IconKeyboard = "\uf11c" // keyboard
	IconCoffee   = "\uf0f4" // coffee
	IconMoon     = "\uf186" // moon
	IconVersion  = "\uf02b" // tag
)
