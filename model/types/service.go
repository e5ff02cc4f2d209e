package types

// Service is a directive handler service
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
