package session

// Option customises a new session
type Option func(*Session)

// WithWorkDir sets the initial working directory
func WithWorkDir(dir string) Option {
	return func(s *Session) {
		s.workDir = dir
	}
}

// WithScriptDir sets the directory of the script being interpreted
func WithScriptDir(dir string) Option {
	return func(s *Session) {
		s.scriptDir = dir
	}
}

// WithSettings pre-populates named settings
func WithSettings(settings map[string]interface{}) Option {
	return func(s *Session) {
		for k, v := range settings {
			s.settings[k] = v
		}
	}
}
