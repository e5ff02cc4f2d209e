package model

// Directive represents one parsed command line: a name plus a mapping of
// argument name to argument value.  Values are typed scalars (string, bool,
// int, float64 or parser.Percent).  A directive is immutable once parsed.
type Directive struct {
	Name string                 `json:"name" yaml:"name"`
	Args map[string]interface{} `json:"args,omitempty" yaml:"args,omitempty"`
	Line int                    `json:"line,omitempty" yaml:"line,omitempty"`
}

// Arg returns a named argument value
func (d *Directive) Arg(name string) (interface{}, bool) {
	if d.Args == nil {
		return nil, false
	}
	value, ok := d.Args[name]
	return value, ok
}

// StringArg returns a named argument as a string
func (d *Directive) StringArg(name string) (string, bool) {
	value, ok := d.Arg(name)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// NewDirective creates a new directive
func NewDirective(name string, line int, args map[string]interface{}) *Directive {
	if args == nil {
		args = map[string]interface{}{}
	}
	return &Directive{Name: name, Args: args, Line: line}
}
