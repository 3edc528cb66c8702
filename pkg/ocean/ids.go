package ocean

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Static errors for identifier validation.
var (
	ErrBlankID       = errors.New("identifier must not be blank")
	ErrPaddedID      = errors.New("identifier must not contain surrounding whitespace")
	ErrNonPositiveID = errors.New("identifier must be positive")
)

// Identifiers are distinct types per resource kind so the compiler rejects
// cross-kind confusion even when the wire representation is the same.

// DropletID identifies a droplet.
type DropletID int64

// ClusterID identifies a Kubernetes cluster.
type ClusterID string

// NodePoolID identifies a node pool within a cluster.
type NodePoolID string

// DatabaseID identifies a database cluster.
type DatabaseID string

// RegistryName identifies a container registry.
type RegistryName string

// SSHKeyID identifies an SSH key.
type SSHKeyID int64

// VPCID identifies a VPC.
type VPCID string

// ProjectID identifies a project.
type ProjectID string

// parseStringID validates a raw string identifier: it must be non-empty
// and free of surrounding whitespace.
func parseStringID(kind, raw string) (string, error) {
	if raw == "" || strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%s: %w", kind, ErrBlankID)
	}

	if raw != strings.TrimSpace(raw) {
		return "", fmt.Errorf("%s %q: %w", kind, raw, ErrPaddedID)
	}

	return raw, nil
}

// parseIntID validates a raw integer identifier.
func parseIntID(kind string, raw int64) (int64, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("%s %d: %w", kind, raw, ErrNonPositiveID)
	}

	return raw, nil
}

// NewDropletID validates a raw droplet identifier.
func NewDropletID(raw int64) (DropletID, error) {
	id, err := parseIntID("droplet ID", raw)

	return DropletID(id), err
}

// String implements fmt.Stringer.
func (id DropletID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseClusterID validates a raw Kubernetes cluster identifier.
func ParseClusterID(raw string) (ClusterID, error) {
	id, err := parseStringID("cluster ID", raw)

	return ClusterID(id), err
}

// String implements fmt.Stringer.
func (id ClusterID) String() string {
	return string(id)
}

// ParseNodePoolID validates a raw node pool identifier.
func ParseNodePoolID(raw string) (NodePoolID, error) {
	id, err := parseStringID("node pool ID", raw)

	return NodePoolID(id), err
}

// String implements fmt.Stringer.
func (id NodePoolID) String() string {
	return string(id)
}

// ParseDatabaseID validates a raw database cluster identifier.
func ParseDatabaseID(raw string) (DatabaseID, error) {
	id, err := parseStringID("database ID", raw)

	return DatabaseID(id), err
}

// String implements fmt.Stringer.
func (id DatabaseID) String() string {
	return string(id)
}

// ParseRegistryName validates a raw registry name.
func ParseRegistryName(raw string) (RegistryName, error) {
	name, err := parseStringID("registry name", raw)

	return RegistryName(name), err
}

// String implements fmt.Stringer.
func (n RegistryName) String() string {
	return string(n)
}

// NewSSHKeyID validates a raw SSH key identifier.
func NewSSHKeyID(raw int64) (SSHKeyID, error) {
	id, err := parseIntID("SSH key ID", raw)

	return SSHKeyID(id), err
}

// String implements fmt.Stringer.
func (id SSHKeyID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseVPCID validates a raw VPC identifier.
func ParseVPCID(raw string) (VPCID, error) {
	id, err := parseStringID("VPC ID", raw)

	return VPCID(id), err
}

// String implements fmt.Stringer.
func (id VPCID) String() string {
	return string(id)
}

// ParseProjectID validates a raw project identifier.
func ParseProjectID(raw string) (ProjectID, error) {
	id, err := parseStringID("project ID", raw)

	return ProjectID(id), err
}

// String implements fmt.Stringer.
func (id ProjectID) String() string {
	return string(id)
}
