package ocean

import (
	"context"
	"time"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns the same token on every call.
type StaticTokenSource struct {
	AccessToken string
}

// Token implements TokenSource.
func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	return s.AccessToken, nil
}

// DropletsClient manages droplets.
type DropletsClient interface {
	Get(ctx context.Context, id DropletID) (*Droplet, error)
	ListPage(ctx context.Context, params *QueryParams) (*Page[*Droplet], error)
	ListAll(ctx context.Context) ([]*Droplet, error)
	FindByName(ctx context.Context, name string) (*Droplet, bool, error)
	Create(ctx context.Context, spec *DropletSpec) (CreateResult[*Droplet], error)
	Update(ctx context.Context, live *Droplet, spec *DropletSpec) (*Droplet, bool, error)
	Delete(ctx context.Context, id DropletID) error
	Action(ctx context.Context, id DropletID, req *DropletActionRequest) (*Action, error)
	WaitForStatus(ctx context.Context, id DropletID, target DropletStatus, timeout time.Duration) (*Droplet, error)
	WaitForDestroy(ctx context.Context, id DropletID, timeout time.Duration) error
}

// KubernetesClient manages Kubernetes clusters and their node pools.
type KubernetesClient interface {
	Get(ctx context.Context, id ClusterID) (*KubernetesCluster, error)
	ListPage(ctx context.Context, params *QueryParams) (*Page[*KubernetesCluster], error)
	ListAll(ctx context.Context) ([]*KubernetesCluster, error)
	FindByName(ctx context.Context, name string) (*KubernetesCluster, bool, error)
	Create(ctx context.Context, spec *ClusterSpec) (CreateResult[*KubernetesCluster], error)
	Update(ctx context.Context, live *KubernetesCluster, spec *ClusterSpec) (*KubernetesCluster, bool, error)
	Delete(ctx context.Context, id ClusterID) error
	DeleteWithAssociatedResources(ctx context.Context, id ClusterID) error
	Kubeconfig(ctx context.Context, id ClusterID) ([]byte, error)
	CreateNodePool(ctx context.Context, id ClusterID, req *NodePoolCreateRequest) (*NodePool, error)
	UpdateNodePool(ctx context.Context, id ClusterID, poolID NodePoolID, req *NodePoolUpdateRequest) (*NodePool, error)
	DeleteNodePool(ctx context.Context, id ClusterID, poolID NodePoolID) error
	WaitForStatus(ctx context.Context, id ClusterID, target ClusterStatus, timeout time.Duration) (*KubernetesCluster, error)
	WaitForDestroy(ctx context.Context, id ClusterID, timeout time.Duration) error
}

// DatabasesClient manages database clusters, their users, and firewall
// rules.
type DatabasesClient interface {
	Get(ctx context.Context, id DatabaseID) (*DatabaseCluster, error)
	ListPage(ctx context.Context, params *QueryParams) (*Page[*DatabaseCluster], error)
	ListAll(ctx context.Context) ([]*DatabaseCluster, error)
	FindByName(ctx context.Context, name string) (*DatabaseCluster, bool, error)
	Create(ctx context.Context, spec *DatabaseSpec) (CreateResult[*DatabaseCluster], error)
	Update(ctx context.Context, live *DatabaseCluster, spec *DatabaseSpec) (*DatabaseCluster, bool, error)
	Delete(ctx context.Context, id DatabaseID) error
	Resize(ctx context.Context, id DatabaseID, req *DatabaseResizeRequest) error
	SetMaintenanceWindow(ctx context.Context, id DatabaseID, window MaintenanceWindow) error
	CreateUser(ctx context.Context, id DatabaseID, req *DatabaseUserCreateRequest) (*DatabaseUser, error)
	DeleteUser(ctx context.Context, id DatabaseID, name string) error
	SetFirewallRules(ctx context.Context, id DatabaseID, rules []FirewallRule) error
	FirewallRules(ctx context.Context, id DatabaseID) ([]FirewallRule, error)
	WaitForStatus(ctx context.Context, id DatabaseID, target DatabaseStatus, timeout time.Duration) (*DatabaseCluster, error)
	WaitForDestroy(ctx context.Context, id DatabaseID, timeout time.Duration) error
}

// RegistryClient manages container registries and their repositories.
type RegistryClient interface {
	Get(ctx context.Context, name RegistryName) (*Registry, error)
	Create(ctx context.Context, spec *RegistrySpec) (CreateResult[*Registry], error)
	Update(ctx context.Context, live *Registry, spec *RegistrySpec) (*Registry, bool, error)
	Delete(ctx context.Context, name RegistryName) error
	ListRepositories(ctx context.Context, name RegistryName, params *QueryParams) (*Page[Repository], error)
	ListTags(ctx context.Context, name RegistryName, repository string, params *QueryParams) (*Page[RepositoryTag], error)
	DeleteTag(ctx context.Context, name RegistryName, repository, tag string) error
	DeleteManifest(ctx context.Context, name RegistryName, repository, digest string) error
	StartGarbageCollection(ctx context.Context, name RegistryName) (*GarbageCollection, error)
	GetGarbageCollection(ctx context.Context, name RegistryName) (*GarbageCollection, error)
	WaitForGarbageCollection(ctx context.Context, name RegistryName, timeout time.Duration) (*GarbageCollection, error)
	WaitForDestroy(ctx context.Context, name RegistryName, timeout time.Duration) error
}

// SSHKeysClient manages account SSH keys.
type SSHKeysClient interface {
	Get(ctx context.Context, id SSHKeyID) (*SSHKey, error)
	ListAll(ctx context.Context) ([]*SSHKey, error)
	Create(ctx context.Context, req *SSHKeyCreateRequest) (*SSHKey, error)
	Rename(ctx context.Context, id SSHKeyID, name string) (*SSHKey, error)
	Delete(ctx context.Context, id SSHKeyID) error
}

// VPCsClient manages VPCs.
type VPCsClient interface {
	Get(ctx context.Context, id VPCID) (*VPC, error)
	ListAll(ctx context.Context) ([]*VPC, error)
	Create(ctx context.Context, req *VPCCreateRequest) (*VPC, error)
	Update(ctx context.Context, id VPCID, req *VPCUpdateRequest) (*VPC, error)
	Delete(ctx context.Context, id VPCID) error
}

// RegionsClient serves the region catalog.
type RegionsClient interface {
	ListAll(ctx context.Context) ([]Region, error)
}

// ProjectsClient manages projects.
type ProjectsClient interface {
	Get(ctx context.Context, id ProjectID) (*Project, error)
	GetDefault(ctx context.Context) (*Project, error)
	ListAll(ctx context.Context) ([]*Project, error)
	Create(ctx context.Context, req *ProjectCreateRequest) (*Project, error)
	Update(ctx context.Context, id ProjectID, req *ProjectUpdateRequest) (*Project, error)
}

// Client is the full Ocean API surface.
type Client interface {
	Droplets() DropletsClient
	Kubernetes() KubernetesClient
	Databases() DatabasesClient
	Registry() RegistryClient
	SSHKeys() SSHKeysClient
	VPCs() VPCsClient
	Regions() RegionsClient
	Projects() ProjectsClient

	// Close releases the transport. Every operation after Close fails
	// fast with ErrClientClosed.
	Close() error
}

// Config configures a client built by oceanclient.New.
type Config struct {
	// APIEndpoint is the base URL (e.g., "https://api.ocean.example").
	// oceanclient.New normalizes it by trimming a trailing slash and
	// adding "https://" when no scheme is present.
	APIEndpoint string

	// AccessToken is the bearer token attached to every request.
	// Ignored when TokenSource is set.
	AccessToken string

	// TokenSource overrides AccessToken with a custom supplier.
	TokenSource TokenSource

	// HTTPTimeout optionally bounds individual HTTP requests. Most
	// callers should rely on context deadlines instead.
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of transport retries for 5xx/429
	// responses. Zero selects the default.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// WaitBaseDelay and WaitMaxDelay tune the wait-for-status backoff.
	// Zero selects the defaults (3s base, 30s cap).
	WaitBaseDelay time.Duration
	WaitMaxDelay  time.Duration

	// Debug enables verbose HTTP logging when a Logger is provided.
	Debug bool
	// Logger receives structured logs from the transport and wait loops.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache configures the catalog cache. Nil disables caching.
	Cache *CacheConfig
}
