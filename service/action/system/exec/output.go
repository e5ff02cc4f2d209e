package exec

// Output represents the result of invoking an external program
type Output struct {
	Command string `json:"command,omitempty"` // The command line that was executed
	Stdout  string `json:"stdout,omitempty"`  // Standard output from the program
	Stderr  string `json:"stderr,omitempty"`  // Standard error from the program
	Status  int    `json:"status,omitempty"`  // Exit code
}
