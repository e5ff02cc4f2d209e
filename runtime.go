package mapscript

import (
	"context"
	"fmt"

	"github.com/osmkit/mapscript/dao/script"
	"github.com/osmkit/mapscript/internal/idgen"
	"github.com/osmkit/mapscript/model"
	"github.com/osmkit/mapscript/policy"
	"github.com/osmkit/mapscript/runtime/interp"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Runtime applies scripts to sessions
type Runtime struct {
	scriptDAO   *script.Service
	interpreter *interp.Service
	policy      *policy.Policy
}

// LoadScript loads and parses the script at the given location
func (r *Runtime) LoadScript(ctx context.Context, location string) (*model.Script, error) {
	return r.scriptDAO.Load(ctx, location)
}

// DecodeScript parses in-memory script source
func (r *Runtime) DecodeScript(data []byte) (*model.Script, error) {
	return r.scriptDAO.DecodeText(data)
}

// RefreshScript discards any cached copy of the script at the given
// location.  The next LoadScript call reloads the file.
func (r *Runtime) RefreshScript(location string) error {
	if r == nil || r.scriptDAO == nil {
		return fmt.Errorf("runtime not fully initialised, scriptDAO missing")
	}
	r.scriptDAO.Evict(location)
	return nil
}

// UpsertScript stores the supplied script source under the given location
// and makes the parsed form immediately available.  When data is nil the
// call falls back to RefreshScript, causing a lazy reload on next use.
func (r *Runtime) UpsertScript(ctx context.Context, location string, data []byte) error {
	if r == nil || r.scriptDAO == nil {
		return fmt.Errorf("runtime not fully initialised, scriptDAO missing")
	}
	if data == nil {
		return r.RefreshScript(location)
	}
	_, err := r.scriptDAO.Upsert(ctx, location, data)
	return err
}

// NewSession creates a fresh session with a generated run identifier
func (r *Runtime) NewSession(opts ...session.Option) *session.Session {
	return session.New(idgen.New(), opts...)
}

// Run applies an already parsed script to the supplied session
func (r *Runtime) Run(ctx context.Context, aScript *model.Script, sess *session.Session) (*interp.Report, error) {
	if aScript == nil {
		return nil, fmt.Errorf("script is nil")
	}
	if r.policy != nil && policy.FromContext(ctx) == nil {
		ctx = policy.WithPolicy(ctx, r.policy)
	}
	return r.interpreter.Run(ctx, aScript, sess)
}

// RunScript loads the script at location and applies it to a fresh session
// whose script directory is the script's parent location.
func (r *Runtime) RunScript(ctx context.Context, location string, opts ...session.Option) (*interp.Report, *session.Session, error) {
	aScript, err := r.LoadScript(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	scriptDir := ""
	if aScript.Source != nil && aScript.Source.URL != "" {
		scriptDir, _ = url.Split(aScript.Source.URL, file.Scheme)
	}
	sessionOptions := opts
	if scriptDir != "" {
		sessionOptions = append([]session.Option{session.WithScriptDir(scriptDir)}, opts...)
	}
	sess := r.NewSession(sessionOptions...)
	report, err := r.Run(ctx, aScript, sess)
	return report, sess, err
}
