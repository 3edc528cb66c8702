package ocean

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ClusterStatus enumerates the lifecycle states of a Kubernetes cluster.
type ClusterStatus string

// Cluster statuses.
const (
	ClusterStatusProvisioning ClusterStatus = "provisioning"
	ClusterStatusRunning      ClusterStatus = "running"
	ClusterStatusDegraded     ClusterStatus = "degraded"
	ClusterStatusError        ClusterStatus = "error"
	ClusterStatusUpgrading    ClusterStatus = "upgrading"
	ClusterStatusDeleting     ClusterStatus = "deleting"
	ClusterStatusDeleted      ClusterStatus = "deleted"
)

// Static errors for cluster spec validation.
var (
	ErrNodePoolRequired      = errors.New("a cluster spec requires at least one node pool")
	ErrDuplicateNodePoolName = errors.New("node pool names must be unique within a cluster")
	ErrAutoScaleBounds       = errors.New("auto-scale bounds require 0 < min <= max")
)

// KubernetesCluster is an immutable snapshot of a managed Kubernetes
// cluster, including its node pools. Node pools are value-contained: the
// snapshot's copy is the only copy.
type KubernetesCluster struct {
	ID            ClusterID         `json:"id"                        yaml:"id"`
	Name          string            `json:"name"                      yaml:"name"`
	Region        string            `json:"region"                    yaml:"region"`
	Version       string            `json:"version"                   yaml:"version"`
	ClusterSubnet string            `json:"cluster_subnet"            yaml:"cluster_subnet"`
	ServiceSubnet string            `json:"service_subnet"            yaml:"service_subnet"`
	VPCID         VPCID             `json:"vpc_uuid,omitempty"        yaml:"vpc_uuid,omitempty"`
	Status        ClusterStatus     `json:"status"                    yaml:"status"`
	Tags          []string          `json:"tags,omitempty"            yaml:"tags,omitempty"`
	NodePools     []NodePool        `json:"node_pools"                yaml:"node_pools"`
	AutoUpgrade   bool              `json:"auto_upgrade"              yaml:"auto_upgrade"`
	SurgeUpgrade  bool              `json:"surge_upgrade"             yaml:"surge_upgrade"`
	HA            bool              `json:"ha"                        yaml:"ha"`
	Maintenance   MaintenanceWindow `json:"maintenance_policy"        yaml:"maintenance_policy"`
	Endpoint      string            `json:"endpoint,omitempty"        yaml:"endpoint,omitempty"`
	CreatedAt     time.Time         `json:"created_at"                yaml:"created_at"`
}

// NodePool is a group of worker nodes owned by a cluster. Equality is
// based on the pool's own stable ID when present, otherwise on name.
type NodePool struct {
	ID        NodePoolID        `json:"id"                   yaml:"id"`
	Name      string            `json:"name"                 yaml:"name"`
	Size      string            `json:"size"                 yaml:"size"`
	Count     int               `json:"count"                yaml:"count"`
	Tags      []string          `json:"tags,omitempty"       yaml:"tags,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"     yaml:"labels,omitempty"`
	AutoScale bool              `json:"auto_scale"           yaml:"auto_scale"`
	MinNodes  int               `json:"min_nodes,omitempty"  yaml:"min_nodes,omitempty"`
	MaxNodes  int               `json:"max_nodes,omitempty"  yaml:"max_nodes,omitempty"`
}

// NodePoolSpec is the desired state of one node pool.
type NodePoolSpec struct {
	Name      string
	Size      string
	Count     int
	Tags      []string
	Labels    map[string]string
	AutoScale bool
	MinNodes  int
	MaxNodes  int
}

func (p NodePoolSpec) validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}

	if err := validateSlug("node size", p.Size); err != nil {
		return err
	}

	if p.Count <= 0 {
		return fmt.Errorf("node pool %q count %d: %w", p.Name, p.Count, ErrInvalidCount)
	}

	if err := validateTags(p.Tags); err != nil {
		return err
	}

	if p.AutoScale && (p.MinNodes <= 0 || p.MinNodes > p.MaxNodes) {
		return fmt.Errorf("node pool %q: %w", p.Name, ErrAutoScaleBounds)
	}

	return nil
}

// matches compares the mutable projection of a pool against its live
// counterpart. Name and size are identity fields checked by
// ImmutableMismatch, not here.
func (p NodePoolSpec) matches(live NodePool) bool {
	if live.Count != p.Count {
		return false
	}

	if live.AutoScale != p.AutoScale || live.MinNodes != p.MinNodes || live.MaxNodes != p.MaxNodes {
		return false
	}

	if !tagsEqual(live.Tags, p.Tags) {
		return false
	}

	return labelsEqual(live.Labels, p.Labels)
}

// updateRequest renders a minimal node pool update body for the fields
// that drifted from the live pool.
func (p NodePoolSpec) updateRequest(live NodePool) *NodePoolUpdateRequest {
	req := &NodePoolUpdateRequest{}

	if live.Count != p.Count {
		count := p.Count
		req.Count = &count
	}

	if !tagsEqual(live.Tags, p.Tags) {
		tags := cloneTags(p.Tags)
		if tags == nil {
			tags = []string{}
		}

		req.Tags = &tags
	}

	if !labelsEqual(live.Labels, p.Labels) {
		labels := p.Labels
		if labels == nil {
			labels = map[string]string{}
		}

		req.Labels = &labels
	}

	if live.AutoScale != p.AutoScale {
		autoScale := p.AutoScale
		req.AutoScale = &autoScale
	}

	if live.MinNodes != p.MinNodes {
		minNodes := p.MinNodes
		req.MinNodes = &minNodes
	}

	if live.MaxNodes != p.MaxNodes {
		maxNodes := p.MaxNodes
		req.MaxNodes = &maxNodes
	}

	return req
}

// ClusterSpec is the desired state of a Kubernetes cluster.
type ClusterSpec struct {
	name          string
	region        string
	version       string
	clusterSubnet string
	serviceSubnet string
	vpcID         VPCID
	tags          []string
	pools         []NodePoolSpec
	autoUpgrade   bool
	surgeUpgrade  bool
	ha            bool
	maintenance   MaintenanceWindow
}

// NewClusterSpec builds a spec with the mandatory fields: name, region
// slug, and Kubernetes version slug.
func NewClusterSpec(name, region, version string) (*ClusterSpec, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateSlug("region", region); err != nil {
		return nil, err
	}

	if err := validateSlug("version", version); err != nil {
		return nil, err
	}

	return &ClusterSpec{name: name, region: region, version: version}, nil
}

// WithNodePool adds a node pool. At least one pool is required before
// Create; pool names must be unique.
func (s *ClusterSpec) WithNodePool(pool NodePoolSpec) (*ClusterSpec, error) {
	if err := pool.validate(); err != nil {
		return nil, err
	}

	for _, existing := range s.pools {
		if existing.Name == pool.Name {
			return nil, fmt.Errorf("%q: %w", pool.Name, ErrDuplicateNodePoolName)
		}
	}

	s.pools = append(s.pools, pool)

	return s, nil
}

// WithTags replaces the desired tag set.
func (s *ClusterSpec) WithTags(tags ...string) (*ClusterSpec, error) {
	if err := validateTags(tags); err != nil {
		return nil, err
	}

	s.tags = cloneTags(tags)

	return s, nil
}

// WithSubnets sets the pod and service CIDR ranges.
func (s *ClusterSpec) WithSubnets(clusterSubnet, serviceSubnet string) (*ClusterSpec, error) {
	if err := validateCIDR(clusterSubnet); err != nil {
		return nil, err
	}

	if err := validateCIDR(serviceSubnet); err != nil {
		return nil, err
	}

	s.clusterSubnet = clusterSubnet
	s.serviceSubnet = serviceSubnet

	return s, nil
}

// WithVPC places the cluster in the given VPC.
func (s *ClusterSpec) WithVPC(id VPCID) *ClusterSpec {
	s.vpcID = id

	return s
}

// WithAutoUpgrade toggles automatic patch-version upgrades.
func (s *ClusterSpec) WithAutoUpgrade(enabled bool) *ClusterSpec {
	s.autoUpgrade = enabled

	return s
}

// WithSurgeUpgrade toggles surge upgrades.
func (s *ClusterSpec) WithSurgeUpgrade(enabled bool) *ClusterSpec {
	s.surgeUpgrade = enabled

	return s
}

// WithHA toggles the high-availability control plane.
func (s *ClusterSpec) WithHA(enabled bool) *ClusterSpec {
	s.ha = enabled

	return s
}

// WithMaintenanceWindow sets the weekly maintenance window.
func (s *ClusterSpec) WithMaintenanceWindow(window MaintenanceWindow) *ClusterSpec {
	s.maintenance = window

	return s
}

// Validate checks cross-field consistency ahead of Create.
func (s *ClusterSpec) Validate() error {
	if len(s.pools) == 0 {
		return ErrNodePoolRequired
	}

	return nil
}

// CopyImmutableFrom backfills the creation-only fields (region, version,
// subnets, VPC, node pool identity set) from a live snapshot so the spec
// can be diffed against it.
func (s *ClusterSpec) CopyImmutableFrom(live *KubernetesCluster) *ClusterSpec {
	s.region = live.Region
	s.version = live.Version
	s.clusterSubnet = live.ClusterSubnet
	s.serviceSubnet = live.ServiceSubnet
	s.vpcID = live.VPCID

	return s
}

// ResourceName implements DesiredState.
func (s *ClusterSpec) ResourceName() string {
	return s.name
}

// Matches implements DesiredState.
func (s *ClusterSpec) Matches(live *KubernetesCluster) bool {
	if live.Name != s.name ||
		!tagsEqual(live.Tags, s.tags) ||
		live.AutoUpgrade != s.autoUpgrade ||
		live.SurgeUpgrade != s.surgeUpgrade ||
		live.HA != s.ha {
		return false
	}

	if !s.maintenance.IsZero() && !live.Maintenance.Equal(s.maintenance) {
		return false
	}

	if len(s.pools) > 0 {
		if len(s.pools) != len(live.NodePools) {
			return false
		}

		liveByName := make(map[string]NodePool, len(live.NodePools))
		for _, pool := range live.NodePools {
			liveByName[pool.Name] = pool
		}

		for _, pool := range s.pools {
			livePool, ok := liveByName[pool.Name]
			if !ok || !pool.matches(livePool) {
				return false
			}
		}
	}

	return true
}

// ImmutableMismatch implements DesiredState. The node pool identity set
// (pool names and their node sizes) is creation-only: pools are added,
// removed, or re-sized through the node pool sub-resource, not through
// cluster update.
func (s *ClusterSpec) ImmutableMismatch(live *KubernetesCluster) string {
	switch {
	case live.Region != s.region:
		return "region"
	case live.Version != s.version:
		return "version"
	case s.clusterSubnet != "" && live.ClusterSubnet != s.clusterSubnet:
		return "cluster_subnet"
	case s.serviceSubnet != "" && live.ServiceSubnet != s.serviceSubnet:
		return "service_subnet"
	case live.VPCID != s.vpcID:
		return "vpc_uuid"
	}

	if len(s.pools) > 0 {
		desired := make([]string, 0, len(s.pools))
		for _, pool := range s.pools {
			desired = append(desired, pool.Name)
		}

		lives := make([]string, 0, len(live.NodePools))
		liveByName := make(map[string]NodePool, len(live.NodePools))

		for _, pool := range live.NodePools {
			lives = append(lives, pool.Name)
			liveByName[pool.Name] = pool
		}

		sort.Strings(desired)
		sort.Strings(lives)

		if len(desired) != len(lives) {
			return "node_pools"
		}

		for i := range desired {
			if desired[i] != lives[i] {
				return "node_pools"
			}
		}

		for _, pool := range s.pools {
			if liveByName[pool.Name].Size != pool.Size {
				return "node_pools"
			}
		}
	}

	return ""
}

// NodePoolUpdates renders minimal per-pool update bodies for the pools
// whose mutable fields drifted from the live snapshot, keyed by the live
// pool's ID. Pools are matched by name; the identity set itself is
// creation-only (see ImmutableMismatch).
func (s *ClusterSpec) NodePoolUpdates(live *KubernetesCluster) map[NodePoolID]*NodePoolUpdateRequest {
	liveByName := make(map[string]NodePool, len(live.NodePools))
	for _, pool := range live.NodePools {
		liveByName[pool.Name] = pool
	}

	updates := make(map[NodePoolID]*NodePoolUpdateRequest)

	for _, pool := range s.pools {
		livePool, ok := liveByName[pool.Name]
		if !ok || pool.matches(livePool) {
			continue
		}

		updates[livePool.ID] = pool.updateRequest(livePool)
	}

	return updates
}

// CreateRequest renders the POST body.
func (s *ClusterSpec) CreateRequest() *ClusterCreateRequest {
	req := &ClusterCreateRequest{
		Name:          s.name,
		Region:        s.region,
		Version:       s.version,
		ClusterSubnet: s.clusterSubnet,
		ServiceSubnet: s.serviceSubnet,
		VPCID:         s.vpcID,
		Tags:          cloneTags(s.tags),
		AutoUpgrade:   s.autoUpgrade,
		SurgeUpgrade:  s.surgeUpgrade,
		HA:            s.ha,
	}

	if !s.maintenance.IsZero() {
		req.Maintenance = &s.maintenance
	}

	for _, pool := range s.pools {
		req.NodePools = append(req.NodePools, NodePoolCreateRequest{
			Name:      pool.Name,
			Size:      pool.Size,
			Count:     pool.Count,
			Tags:      cloneTags(pool.Tags),
			Labels:    pool.Labels,
			AutoScale: pool.AutoScale,
			MinNodes:  pool.MinNodes,
			MaxNodes:  pool.MaxNodes,
		})
	}

	return req
}

// UpdateRequest renders a partial PUT body containing only the fields
// that differ from the live snapshot.
func (s *ClusterSpec) UpdateRequest(live *KubernetesCluster) *ClusterUpdateRequest {
	req := &ClusterUpdateRequest{}

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

	if live.AutoUpgrade != s.autoUpgrade {
		req.AutoUpgrade = &s.autoUpgrade
	}

	if live.SurgeUpgrade != s.surgeUpgrade {
		req.SurgeUpgrade = &s.surgeUpgrade
	}

	if live.HA != s.ha {
		req.HA = &s.ha
	}

	if !s.maintenance.IsZero() && !live.Maintenance.Equal(s.maintenance) {
		req.Maintenance = &s.maintenance
	}

	return req
}

// ClusterCreateRequest is the wire body for cluster creation.
type ClusterCreateRequest struct {
	Name          string                  `json:"name"                         yaml:"name"`
	Region        string                  `json:"region"                       yaml:"region"`
	Version       string                  `json:"version"                      yaml:"version"`
	ClusterSubnet string                  `json:"cluster_subnet,omitempty"     yaml:"cluster_subnet,omitempty"`
	ServiceSubnet string                  `json:"service_subnet,omitempty"     yaml:"service_subnet,omitempty"`
	VPCID         VPCID                   `json:"vpc_uuid,omitempty"           yaml:"vpc_uuid,omitempty"`
	Tags          []string                `json:"tags,omitempty"               yaml:"tags,omitempty"`
	NodePools     []NodePoolCreateRequest `json:"node_pools"                   yaml:"node_pools"`
	Maintenance   *MaintenanceWindow      `json:"maintenance_policy,omitempty" yaml:"maintenance_policy,omitempty"`
	AutoUpgrade   bool                    `json:"auto_upgrade,omitempty"       yaml:"auto_upgrade,omitempty"`
	SurgeUpgrade  bool                    `json:"surge_upgrade,omitempty"      yaml:"surge_upgrade,omitempty"`
	HA            bool                    `json:"ha,omitempty"                 yaml:"ha,omitempty"`
}

// NodePoolCreateRequest is the wire body for node pool creation, both
// inline in cluster creation and standalone.
type NodePoolCreateRequest struct {
	Name      string            `json:"name"                 yaml:"name"`
	Size      string            `json:"size"                 yaml:"size"`
	Count     int               `json:"count"                yaml:"count"`
	Tags      []string          `json:"tags,omitempty"       yaml:"tags,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"     yaml:"labels,omitempty"`
	AutoScale bool              `json:"auto_scale,omitempty" yaml:"auto_scale,omitempty"`
	MinNodes  int               `json:"min_nodes,omitempty"  yaml:"min_nodes,omitempty"`
	MaxNodes  int               `json:"max_nodes,omitempty"  yaml:"max_nodes,omitempty"`
}

// ClusterUpdateRequest is the wire body for a partial cluster update.
// Nil fields are omitted and left unchanged by the server. Tags is a
// pointer so that clearing the set marshals as an explicit empty list
// instead of being dropped from the body.
type ClusterUpdateRequest struct {
	Name         *string            `json:"name,omitempty"               yaml:"name,omitempty"`
	Tags         *[]string          `json:"tags,omitempty"               yaml:"tags,omitempty"`
	Maintenance  *MaintenanceWindow `json:"maintenance_policy,omitempty" yaml:"maintenance_policy,omitempty"`
	AutoUpgrade  *bool              `json:"auto_upgrade,omitempty"       yaml:"auto_upgrade,omitempty"`
	SurgeUpgrade *bool              `json:"surge_upgrade,omitempty"      yaml:"surge_upgrade,omitempty"`
	HA           *bool              `json:"ha,omitempty"                 yaml:"ha,omitempty"`
}

// IsEmpty reports whether the update carries no cluster-level changes.
// Node pool drift travels on the node pool sub-resource instead.
func (r *ClusterUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Tags == nil && r.Maintenance == nil &&
		r.AutoUpgrade == nil && r.SurgeUpgrade == nil && r.HA == nil
}

// NodePoolUpdateRequest is the wire body for a partial node pool update.
// Tags and Labels are pointers so that clearing either set marshals as
// an explicit empty collection instead of being dropped from the body.
type NodePoolUpdateRequest struct {
	Name      *string            `json:"name,omitempty"       yaml:"name,omitempty"`
	Count     *int               `json:"count,omitempty"      yaml:"count,omitempty"`
	Tags      *[]string          `json:"tags,omitempty"       yaml:"tags,omitempty"`
	Labels    *map[string]string `json:"labels,omitempty"     yaml:"labels,omitempty"`
	AutoScale *bool              `json:"auto_scale,omitempty" yaml:"auto_scale,omitempty"`
	MinNodes  *int               `json:"min_nodes,omitempty"  yaml:"min_nodes,omitempty"`
	MaxNodes  *int               `json:"max_nodes,omitempty"  yaml:"max_nodes,omitempty"`
}
