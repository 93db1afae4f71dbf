package factory

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Close() error
}

// Scheduler defines the operation of an entity able to run periodic jobs
type Scheduler interface {
	Start() error
	Stop()
}
