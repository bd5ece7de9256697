package driver

// Kind classifies a fatal run error
type Kind int

const (
	// ConfigError covers invalid parameters, selection and tracker initialization
	ConfigError Kind = iota + 1
	// AcquisitionError covers videos that can't be opened or read
	AcquisitionError
	// ExportError covers dataset assembly and file writing
	ExportError
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "configuration error"
	case AcquisitionError:
		return "acquisition error"
	case ExportError:
		return "export error"
	default:
		return "error"
	}
}

// Error is a fatal run error tagged with its kind
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
