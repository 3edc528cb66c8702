package ocean

import "time"

// SSHKey is an immutable snapshot of an account SSH key.
type SSHKey struct {
	ID          SSHKeyID `json:"id"          yaml:"id"`
	Fingerprint string   `json:"fingerprint" yaml:"fingerprint"`
	Name        string   `json:"name"        yaml:"name"`
	PublicKey   string   `json:"public_key"  yaml:"public_key"`
}

// SSHKeyCreateRequest is the wire body for SSH key creation.
type SSHKeyCreateRequest struct {
	Name      string `json:"name"       yaml:"name"`
	PublicKey string `json:"public_key" yaml:"public_key"`
}

// SSHKeyUpdateRequest is the wire body for an SSH key rename.
type SSHKeyUpdateRequest struct {
	Name string `json:"name" yaml:"name"`
}

// VPC is an immutable snapshot of a virtual private network.
type VPC struct {
	ID          VPCID     `json:"id"                    yaml:"id"`
	Name        string    `json:"name"                  yaml:"name"`
	Region      string    `json:"region"                yaml:"region"`
	IPRange     string    `json:"ip_range"              yaml:"ip_range"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Default     bool      `json:"default"               yaml:"default"`
	CreatedAt   time.Time `json:"created_at"            yaml:"created_at"`
}

// VPCCreateRequest is the wire body for VPC creation.
type VPCCreateRequest struct {
	Name        string `json:"name"                  yaml:"name"`
	Region      string `json:"region"                yaml:"region"`
	IPRange     string `json:"ip_range,omitempty"    yaml:"ip_range,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// VPCUpdateRequest is the wire body for a partial VPC update.
type VPCUpdateRequest struct {
	Name        *string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Region is one entry in the region catalog. The catalog is slow-moving
// and served from the client's read-through cache when one is configured.
type Region struct {
	Slug      string   `json:"slug"      yaml:"slug"`
	Name      string   `json:"name"      yaml:"name"`
	Available bool     `json:"available" yaml:"available"`
	Features  []string `json:"features"  yaml:"features"`
	Sizes     []string `json:"sizes"     yaml:"sizes"`
}

// Project groups resources for organization and billing.
type Project struct {
	ID          ProjectID `json:"id"          yaml:"id"`
	Name        string    `json:"name"        yaml:"name"`
	Purpose     string    `json:"purpose"     yaml:"purpose"`
	Environment string    `json:"environment" yaml:"environment"`
	IsDefault   bool      `json:"is_default"  yaml:"is_default"`
	CreatedAt   time.Time `json:"created_at"  yaml:"created_at"`
}

// ProjectCreateRequest is the wire body for project creation.
type ProjectCreateRequest struct {
	Name        string `json:"name"                  yaml:"name"`
	Purpose     string `json:"purpose"               yaml:"purpose"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
}

// ProjectUpdateRequest is the wire body for a partial project update.
type ProjectUpdateRequest struct {
	Name        *string `json:"name,omitempty"        yaml:"name,omitempty"`
	Purpose     *string `json:"purpose,omitempty"     yaml:"purpose,omitempty"`
	Environment *string `json:"environment,omitempty" yaml:"environment,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"  yaml:"is_default,omitempty"`
}
