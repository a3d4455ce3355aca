package radio

// Tristate is a three-valued boolean: true, false, or unknown. The search
// API leaves fields like is_australian null far more often than it fills
// them in, and collapsing null to false would fabricate data.
type Tristate int

const (
	// TristateUnknown means the source supplied no value (absent or null).
	TristateUnknown Tristate = iota

	// TristateFalse means the source supplied an explicit false.
	TristateFalse

	// TristateTrue means the source supplied an explicit true.
	TristateTrue
)

// Bool reports the underlying value and whether it is known.
func (t Tristate) Bool() (value, known bool) {
	switch t {
	case TristateTrue:
		return true, true
	case TristateFalse:
		return false, true
	default:
		return false, false
	}
}

// String implements fmt.Stringer.
func (t Tristate) String() string {
	switch t {
	case TristateTrue:
		return "true"
	case TristateFalse:
		return "false"
	default:
		return "unknown"
	}
}

// tristateOf converts an optional bool to a Tristate.
func tristateOf(b *bool) Tristate {
	switch {
	case b == nil:
		return TristateUnknown
	case *b:
		return TristateTrue
	default:
		return TristateFalse
	}
}
