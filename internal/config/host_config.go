package config

type Hosts struct{}

var _ HostConfig = Hosts{}

// GetLocalHostSuffix returns the hostname suffix that marks a local tenant
// host (e.g. "acme.localhost").
func (Hosts) GetLocalHostSuffix() string {
	return GetEnv("LOCAL_HOST_SUFFIX", ".localhost")
}

// GetProductionHostSuffix returns the hostname suffix that marks a
// production tenant host (e.g. "acme.nepdora.com").
func (Hosts) GetProductionHostSuffix() string {
	return GetEnv("PRODUCTION_HOST_SUFFIX", ".nepdora.com")
}
