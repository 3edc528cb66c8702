package ocean

import (
	"errors"
	"fmt"
	"time"
)

// DatabaseStatus enumerates the lifecycle states of a database cluster.
type DatabaseStatus string

// Database statuses.
const (
	DatabaseStatusCreating  DatabaseStatus = "creating"
	DatabaseStatusOnline    DatabaseStatus = "online"
	DatabaseStatusResizing  DatabaseStatus = "resizing"
	DatabaseStatusMigrating DatabaseStatus = "migrating"
	DatabaseStatusForking   DatabaseStatus = "forking"
)

// Static errors for database spec validation.
var (
	ErrInvalidEngine       = errors.New("unsupported database engine")
	ErrInvalidNodeCount    = errors.New("node count must be between 1 and 3")
	ErrMaintenanceDayFixed = errors.New("database maintenance windows require a concrete weekday")
)

var databaseEngines = map[string]struct{}{
	"pg": {}, "mysql": {}, "redis": {}, "mongodb": {},
}

// DatabaseCluster is an immutable snapshot of a managed database cluster.
// Users and firewall rules are value-contained children.
type DatabaseCluster struct {
	ID          DatabaseID        `json:"id"                       yaml:"id"`
	Name        string            `json:"name"                     yaml:"name"`
	Engine      string            `json:"engine"                   yaml:"engine"`
	Version     string            `json:"version"                  yaml:"version"`
	Region      string            `json:"region"                   yaml:"region"`
	Size        string            `json:"size"                     yaml:"size"`
	NumNodes    int               `json:"num_nodes"                yaml:"num_nodes"`
	Status      DatabaseStatus    `json:"status"                   yaml:"status"`
	Tags        []string          `json:"tags,omitempty"           yaml:"tags,omitempty"`
	VPCID       VPCID             `json:"private_network_uuid,omitempty" yaml:"private_network_uuid,omitempty"`
	Maintenance MaintenanceWindow `json:"maintenance_window"       yaml:"maintenance_window"`
	Users       []DatabaseUser    `json:"users,omitempty"          yaml:"users,omitempty"`
	CreatedAt   time.Time         `json:"created_at"               yaml:"created_at"`
}

// DatabaseUser is a credential owned by a database cluster. Equality is
// based on the user's name, the stable identity within a cluster.
type DatabaseUser struct {
	Name     string `json:"name"               yaml:"name"`
	Role     string `json:"role,omitempty"     yaml:"role,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// FirewallRule is an inbound source allowed to reach a database cluster.
// Rules carry no server-side ID; equality is the full field tuple.
type FirewallRule struct {
	Type  string `json:"type"  yaml:"type"` // "droplet", "k8s", "ip_addr", "tag"
	Value string `json:"value" yaml:"value"`
}

// DatabaseSpec is the desired state of a database cluster.
type DatabaseSpec struct {
	name        string
	engine      string
	version     string
	region      string
	size        string
	numNodes    int
	vpcID       VPCID
	tags        []string
	maintenance MaintenanceWindow
}

// NewDatabaseSpec builds a spec with the mandatory fields. The engine
// must be one of pg, mysql, redis, or mongodb.
func NewDatabaseSpec(name, engine, version, region, size string, numNodes int) (*DatabaseSpec, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if _, ok := databaseEngines[engine]; !ok {
		return nil, fmt.Errorf("%q: %w", engine, ErrInvalidEngine)
	}

	if err := validateSlug("version", version); err != nil {
		return nil, err
	}

	if err := validateSlug("region", region); err != nil {
		return nil, err
	}

	if err := validateSlug("size", size); err != nil {
		return nil, err
	}

	if numNodes < 1 || numNodes > 3 {
		return nil, fmt.Errorf("%d: %w", numNodes, ErrInvalidNodeCount)
	}

	return &DatabaseSpec{
		name:     name,
		engine:   engine,
		version:  version,
		region:   region,
		size:     size,
		numNodes: numNodes,
	}, nil
}

// WithTags replaces the desired tag set.
func (s *DatabaseSpec) WithTags(tags ...string) (*DatabaseSpec, error) {
	if err := validateTags(tags); err != nil {
		return nil, err
	}

	s.tags = cloneTags(tags)

	return s, nil
}

// WithVPC places the cluster on the given private network.
func (s *DatabaseSpec) WithVPC(id VPCID) *DatabaseSpec {
	s.vpcID = id

	return s
}

// WithMaintenanceWindow sets the weekly maintenance window. Database
// clusters require a concrete weekday; AnyDay is rejected.
func (s *DatabaseSpec) WithMaintenanceWindow(window MaintenanceWindow) (*DatabaseSpec, error) {
	if window.Day == AnyDay {
		return nil, ErrMaintenanceDayFixed
	}

	s.maintenance = window

	return s, nil
}

// CopyImmutableFrom backfills the creation-only fields (engine, version,
// region, size, node count, VPC) from a live snapshot. Size and node
// count change through Resize, not Update.
func (s *DatabaseSpec) CopyImmutableFrom(live *DatabaseCluster) *DatabaseSpec {
	s.engine = live.Engine
	s.version = live.Version
	s.region = live.Region
	s.size = live.Size
	s.numNodes = live.NumNodes
	s.vpcID = live.VPCID

	return s
}

// ResourceName implements DesiredState.
func (s *DatabaseSpec) ResourceName() string {
	return s.name
}

// Matches implements DesiredState.
func (s *DatabaseSpec) Matches(live *DatabaseCluster) bool {
	if live.Name != s.name || !tagsEqual(live.Tags, s.tags) {
		return false
	}

	if !s.maintenance.IsZero() && !live.Maintenance.Equal(s.maintenance) {
		return false
	}

	return true
}

// ImmutableMismatch implements DesiredState.
func (s *DatabaseSpec) ImmutableMismatch(live *DatabaseCluster) string {
	switch {
	case live.Engine != s.engine:
		return "engine"
	case live.Version != s.version:
		return "version"
	case live.Region != s.region:
		return "region"
	case live.Size != s.size:
		return "size"
	case live.NumNodes != s.numNodes:
		return "num_nodes"
	case live.VPCID != s.vpcID:
		return "private_network_uuid"
	default:
		return ""
	}
}

// CreateRequest renders the POST body.
func (s *DatabaseSpec) CreateRequest() *DatabaseCreateRequest {
	return &DatabaseCreateRequest{
		Name:     s.name,
		Engine:   s.engine,
		Version:  s.version,
		Region:   s.region,
		Size:     s.size,
		NumNodes: s.numNodes,
		VPCID:    s.vpcID,
		Tags:     cloneTags(s.tags),
	}
}

// Maintenance returns the desired maintenance window and whether one was
// set. The window travels on its own endpoint, not in the update body.
func (s *DatabaseSpec) Maintenance() (MaintenanceWindow, bool) {
	return s.maintenance, !s.maintenance.IsZero()
}

// UpdateRequest renders a partial update body containing only the fields
// that differ from the live snapshot.
func (s *DatabaseSpec) UpdateRequest(live *DatabaseCluster) *DatabaseUpdateRequest {
	req := &DatabaseUpdateRequest{}

	if live.Name != s.name {
		req.Name = &s.name
	}

	if !tagsEqual(live.Tags, s.tags) {
		tags := cloneTags(s.tags)
		if tags == nil {
			tags = []string{}
		}

		req.Tags = &tags
	}

	return req
}

// DatabaseCreateRequest is the wire body for database cluster creation.
type DatabaseCreateRequest struct {
	Name     string   `json:"name"                           yaml:"name"`
	Engine   string   `json:"engine"                         yaml:"engine"`
	Version  string   `json:"version"                        yaml:"version"`
	Region   string   `json:"region"                         yaml:"region"`
	Size     string   `json:"size"                           yaml:"size"`
	NumNodes int      `json:"num_nodes"                      yaml:"num_nodes"`
	VPCID    VPCID    `json:"private_network_uuid,omitempty" yaml:"private_network_uuid,omitempty"`
	Tags     []string `json:"tags,omitempty"                 yaml:"tags,omitempty"`
}

// DatabaseUpdateRequest is the wire body for a partial database update.
// Tags is a pointer so that clearing the set marshals as an explicit
// empty list instead of being dropped from the body.
type DatabaseUpdateRequest struct {
	Name *string   `json:"name,omitempty" yaml:"name,omitempty"`
	Tags *[]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (r *DatabaseUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Tags == nil
}

// DatabaseResizeRequest is the wire body for PUT /v2/databases/{id}/resize.
type DatabaseResizeRequest struct {
	Size     string `json:"size"      yaml:"size"`
	NumNodes int    `json:"num_nodes" yaml:"num_nodes"`
}

// DatabaseUserCreateRequest is the wire body for user creation.
type DatabaseUserCreateRequest struct {
	Name string `json:"name" yaml:"name"`
}

// FirewallRulesRequest replaces a cluster's inbound sources wholesale.
type FirewallRulesRequest struct {
	Rules []FirewallRule `json:"rules" yaml:"rules"`
}
