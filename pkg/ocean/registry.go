package ocean

import "time"

// Registry is an immutable snapshot of a container registry.
type Registry struct {
	Name             RegistryName `json:"name"                        yaml:"name"`
	Region           string       `json:"region"                      yaml:"region"`
	SubscriptionTier string       `json:"subscription_tier,omitempty" yaml:"subscription_tier,omitempty"`
	StorageUsedBytes int64        `json:"storage_usage_bytes"         yaml:"storage_usage_bytes"`
	CreatedAt        time.Time    `json:"created_at"                  yaml:"created_at"`
}

// RegistrySpec is the desired state of a container registry.
type RegistrySpec struct {
	name   string
	region string
	tier   string
}

// NewRegistrySpec builds a spec with the mandatory fields.
func NewRegistrySpec(name, region, tier string) (*RegistrySpec, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateSlug("region", region); err != nil {
		return nil, err
	}

	if err := validateSlug("subscription tier", tier); err != nil {
		return nil, err
	}

	return &RegistrySpec{name: name, region: region, tier: tier}, nil
}

// CopyImmutableFrom backfills the creation-only fields (region) from a
// live snapshot.
func (s *RegistrySpec) CopyImmutableFrom(live *Registry) *RegistrySpec {
	s.region = live.Region

	return s
}

// ResourceName implements DesiredState.
func (s *RegistrySpec) ResourceName() string {
	return s.name
}

// Matches implements DesiredState. Only the subscription tier is mutable.
func (s *RegistrySpec) Matches(live *Registry) bool {
	return string(live.Name) == s.name && live.SubscriptionTier == s.tier
}

// ImmutableMismatch implements DesiredState.
func (s *RegistrySpec) ImmutableMismatch(live *Registry) string {
	if live.Region != s.region {
		return "region"
	}

	return ""
}

// CreateRequest renders the POST body.
func (s *RegistrySpec) CreateRequest() *RegistryCreateRequest {
	return &RegistryCreateRequest{
		Name:             s.name,
		Region:           s.region,
		SubscriptionTier: s.tier,
	}
}

// UpdateRequest renders a partial update body.
func (s *RegistrySpec) UpdateRequest(live *Registry) *RegistryUpdateRequest {
	req := &RegistryUpdateRequest{}

	if live.SubscriptionTier != s.tier {
		req.SubscriptionTier = &s.tier
	}

	return req
}

// RegistryCreateRequest is the wire body for registry creation.
type RegistryCreateRequest struct {
	Name             string `json:"name"              yaml:"name"`
	Region           string `json:"region"            yaml:"region"`
	SubscriptionTier string `json:"subscription_tier" yaml:"subscription_tier"`
}

// RegistryUpdateRequest is the wire body for a partial registry update.
type RegistryUpdateRequest struct {
	SubscriptionTier *string `json:"subscription_tier,omitempty" yaml:"subscription_tier,omitempty"`
}

// Repository is a named image repository within a registry.
type Repository struct {
	Name          string `json:"name"           yaml:"name"`
	TagCount      int    `json:"tag_count"      yaml:"tag_count"`
	ManifestCount int    `json:"manifest_count" yaml:"manifest_count"`
}

// RepositoryTag is one tag within a repository.
type RepositoryTag struct {
	Tag                 string    `json:"tag"                   yaml:"tag"`
	ManifestDigest      string    `json:"manifest_digest"       yaml:"manifest_digest"`
	CompressedSizeBytes int64     `json:"compressed_size_bytes" yaml:"compressed_size_bytes"`
	UpdatedAt           time.Time `json:"updated_at"            yaml:"updated_at"`
}

// GarbageCollection is an asynchronous registry cleanup run. Its status
// feeds the wait loop.
type GarbageCollection struct {
	UUID         string    `json:"uuid"          yaml:"uuid"`
	RegistryName string    `json:"registry_name" yaml:"registry_name"`
	Status       string    `json:"status"        yaml:"status"`
	CreatedAt    time.Time `json:"created_at"    yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    yaml:"updated_at"`
}

// Garbage collection statuses.
const (
	GCStatusRequested = "requested"
	GCStatusSucceeded = "succeeded"
	GCStatusFailed    = "failed"
)
