package ocean

import (
	"fmt"
	"time"
)

// DropletStatus enumerates the lifecycle states of a droplet.
type DropletStatus string

// Droplet statuses.
const (
	DropletStatusNew     DropletStatus = "new"
	DropletStatusActive  DropletStatus = "active"
	DropletStatusOff     DropletStatus = "off"
	DropletStatusArchive DropletStatus = "archive"
)

// Droplet is an immutable snapshot of a droplet. Observe newer state with
// DropletsClient.Get.
type Droplet struct {
	ID         DropletID     `json:"id"                    yaml:"id"`
	Name       string        `json:"name"                  yaml:"name"`
	Region     string        `json:"region"                yaml:"region"`
	Size       string        `json:"size"                  yaml:"size"`
	Image      string        `json:"image"                 yaml:"image"`
	Status     DropletStatus `json:"status"                yaml:"status"`
	Tags       []string      `json:"tags,omitempty"        yaml:"tags,omitempty"`
	VPCID      VPCID         `json:"vpc_uuid,omitempty"    yaml:"vpc_uuid,omitempty"`
	Backups    bool          `json:"backups"               yaml:"backups"`
	Monitoring bool          `json:"monitoring"            yaml:"monitoring"`
	SSHKeyIDs  []SSHKeyID    `json:"ssh_key_ids,omitempty" yaml:"ssh_key_ids,omitempty"`
	CreatedAt  time.Time     `json:"created_at"            yaml:"created_at"`
}

// DropletSpec is the desired state of a droplet. Setters validate
// immediately and return the spec for chaining.
type DropletSpec struct {
	name       string
	region     string
	size       string
	image      string
	vpcID      VPCID
	tags       []string
	sshKeyIDs  []SSHKeyID
	backups    bool
	monitoring bool
}

// NewDropletSpec builds a spec with the mandatory fields: a valid name,
// region slug, size slug, and base image slug.
func NewDropletSpec(name, region, size, image string) (*DropletSpec, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateSlug("region", region); err != nil {
		return nil, err
	}

	if err := validateSlug("size", size); err != nil {
		return nil, err
	}

	if err := validateSlug("image", image); err != nil {
		return nil, err
	}

	return &DropletSpec{name: name, region: region, size: size, image: image}, nil
}

// WithTags replaces the desired tag set.
func (s *DropletSpec) WithTags(tags ...string) (*DropletSpec, error) {
	if err := validateTags(tags); err != nil {
		return nil, err
	}

	s.tags = cloneTags(tags)

	return s, nil
}

// WithVPC places the droplet in the given VPC.
func (s *DropletSpec) WithVPC(id VPCID) *DropletSpec {
	s.vpcID = id

	return s
}

// WithSSHKeys embeds the given account SSH keys at first boot.
func (s *DropletSpec) WithSSHKeys(ids ...SSHKeyID) *DropletSpec {
	s.sshKeyIDs = append([]SSHKeyID(nil), ids...)

	return s
}

// WithBackups toggles automated backups.
func (s *DropletSpec) WithBackups(enabled bool) *DropletSpec {
	s.backups = enabled

	return s
}

// WithMonitoring toggles the monitoring agent.
func (s *DropletSpec) WithMonitoring(enabled bool) *DropletSpec {
	s.monitoring = enabled

	return s
}

// CopyImmutableFrom backfills the creation-only fields (region, size,
// image, VPC) from a live snapshot so the spec can be diffed against it.
func (s *DropletSpec) CopyImmutableFrom(live *Droplet) *DropletSpec {
	s.region = live.Region
	s.size = live.Size
	s.image = live.Image
	s.vpcID = live.VPCID

	return s
}

// ResourceName implements DesiredState.
func (s *DropletSpec) ResourceName() string {
	return s.name
}

// Matches implements DesiredState: field-by-field comparison of the
// mutable surface.
func (s *DropletSpec) Matches(live *Droplet) bool {
	return live.Name == s.name &&
		tagsEqual(live.Tags, s.tags) &&
		live.Backups == s.backups &&
		live.Monitoring == s.monitoring
}

// ImmutableMismatch implements DesiredState.
func (s *DropletSpec) ImmutableMismatch(live *Droplet) string {
	switch {
	case live.Region != s.region:
		return "region"
	case live.Size != s.size:
		return "size"
	case live.Image != s.image:
		return "image"
	case live.VPCID != s.vpcID:
		return "vpc_uuid"
	default:
		return ""
	}
}

// CreateRequest renders the POST body.
func (s *DropletSpec) CreateRequest() *DropletCreateRequest {
	req := &DropletCreateRequest{
		Name:       s.name,
		Region:     s.region,
		Size:       s.size,
		Image:      s.image,
		Tags:       cloneTags(s.tags),
		Backups:    s.backups,
		Monitoring: s.monitoring,
	}

	if s.vpcID != "" {
		req.VPCID = s.vpcID
	}

	for _, id := range s.sshKeyIDs {
		req.SSHKeys = append(req.SSHKeys, int64(id))
	}

	return req
}

// UpdateRequest renders a partial PUT body containing only the fields
// that differ from the live snapshot.
func (s *DropletSpec) UpdateRequest(live *Droplet) *DropletUpdateRequest {
	req := &DropletUpdateRequest{}

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

	if live.Backups != s.backups {
		req.Backups = &s.backups
	}

	if live.Monitoring != s.monitoring {
		req.Monitoring = &s.monitoring
	}

	return req
}

// DropletCreateRequest is the wire body for droplet creation.
type DropletCreateRequest struct {
	Name       string   `json:"name"                yaml:"name"`
	Region     string   `json:"region"              yaml:"region"`
	Size       string   `json:"size"                yaml:"size"`
	Image      string   `json:"image"               yaml:"image"`
	SSHKeys    []int64  `json:"ssh_keys,omitempty"  yaml:"ssh_keys,omitempty"`
	Tags       []string `json:"tags,omitempty"      yaml:"tags,omitempty"`
	VPCID      VPCID    `json:"vpc_uuid,omitempty"  yaml:"vpc_uuid,omitempty"`
	Backups    bool     `json:"backups,omitempty"   yaml:"backups,omitempty"`
	Monitoring bool     `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`
}

// DropletUpdateRequest is the wire body for a partial droplet update.
// Nil fields are omitted and left unchanged by the server. Tags is a
// pointer so that clearing the set marshals as an explicit empty list
// instead of being dropped from the body.
type DropletUpdateRequest struct {
	Name       *string   `json:"name,omitempty"       yaml:"name,omitempty"`
	Tags       *[]string `json:"tags,omitempty"       yaml:"tags,omitempty"`
	Backups    *bool     `json:"backups,omitempty"    yaml:"backups,omitempty"`
	Monitoring *bool     `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`
}

// IsEmpty reports whether the update carries no changes.
func (r *DropletUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Tags == nil && r.Backups == nil && r.Monitoring == nil
}

// DropletActionType enumerates the asynchronous droplet actions.
type DropletActionType string

// Droplet actions.
const (
	DropletActionPowerOn  DropletActionType = "power_on"
	DropletActionPowerOff DropletActionType = "power_off"
	DropletActionReboot   DropletActionType = "reboot"
	DropletActionRename   DropletActionType = "rename"
)

// Action is an asynchronous server-side operation on a resource. Its
// status feeds the wait loop.
type Action struct {
	ID           int64     `json:"id"            yaml:"id"`
	Status       string    `json:"status"        yaml:"status"`
	Type         string    `json:"type"          yaml:"type"`
	ResourceID   int64     `json:"resource_id"   yaml:"resource_id"`
	ResourceType string    `json:"resource_type" yaml:"resource_type"`
	StartedAt    time.Time `json:"started_at"    yaml:"started_at"`
	CompletedAt  time.Time `json:"completed_at"  yaml:"completed_at"`
}

// Action statuses.
const (
	ActionStatusInProgress = "in-progress"
	ActionStatusCompleted  = "completed"
	ActionStatusErrored    = "errored"
)

// DropletActionRequest is the wire body for POST /v2/droplets/{id}/actions.
type DropletActionRequest struct {
	Type DropletActionType `json:"type"           yaml:"type"`
	Name string            `json:"name,omitempty" yaml:"name,omitempty"`
}

// String implements fmt.Stringer for log output.
func (d *Droplet) String() string {
	return fmt.Sprintf("droplet %d (%s, %s)", d.ID, d.Name, d.Status)
}
