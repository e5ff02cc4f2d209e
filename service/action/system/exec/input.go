package exec

import (
	"github.com/osmkit/mapscript/service/action/system"
)

// RunInput defines parameters for the run-program directive
type RunInput struct {
	Host      *system.Host      `json:"host,omitempty" description:"host to execute the program on"`
	Path      string            `json:"path" description:"program to invoke"`
	Args      []string          `json:"args,omitempty" description:"program arguments"`
	Workdir   string            `json:"workdir,omitempty" description:"directory the program starts in"`
	Env       map[string]string `json:"env,omitempty" description:"environment variables set before the program runs"`
	TimeoutMs int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty" description:"max wait time before timing out"`
}

// Init applies input defaults
func (i *RunInput) Init() {
	if i.Host == nil {
		i.Host = &system.Host{}
	}
	if i.Host.URL == "" {
		i.Host.URL = "bash://localhost/"
	}
}

// RunScriptInput defines parameters for the run-script directive
type RunScriptInput struct {
	Host *system.Host `json:"host,omitempty" description:"host to execute the script on"`
	// File is the script path, resolved against the session
	File string `json:"file" description:"script file passed to the external interpreter"`
	// Interpreter names the external program interpreting the file
	Interpreter string            `json:"interpreter,omitempty" description:"external interpreter, python when empty"`
	Env         map[string]string `json:"env,omitempty"`
	TimeoutMs   int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
}

// Init applies input defaults
func (i *RunScriptInput) Init() {
	if i.Host == nil {
		i.Host = &system.Host{}
	}
	if i.Host.URL == "" {
		i.Host.URL = "bash://localhost/"
	}
	if i.Interpreter == "" {
		i.Interpreter = "python"
	}
}
