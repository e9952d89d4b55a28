package transport

// Transporter abstracts the control channel the client side talks over.
type Transporter interface {
	Send(payload []byte) ([]byte, error)
	ReadData() ([]byte, error)
	Close() error
}
