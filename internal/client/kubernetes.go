package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// KubernetesClient implements ocean.KubernetesClient.
type KubernetesClient struct {
	httpClient *http.Client
	waitOpts   ocean.WaitOptions
}

// NewKubernetesClient creates a new Kubernetes client.
func NewKubernetesClient(httpClient *http.Client, waitOpts ocean.WaitOptions) *KubernetesClient {
	return &KubernetesClient{httpClient: httpClient, waitOpts: waitOpts}
}

type clusterResponse struct {
	Cluster *ocean.KubernetesCluster `json:"kubernetes_cluster"`
}

type clustersListResponse struct {
	Clusters []*ocean.KubernetesCluster `json:"kubernetes_clusters"`
	Links    ocean.Links                `json:"links"`
	Meta     ocean.Meta                 `json:"meta"`
}

type nodePoolResponse struct {
	NodePool *ocean.NodePool `json:"node_pool"`
}

// Get implements ocean.KubernetesClient.Get.
func (c *KubernetesClient) Get(ctx context.Context, id ocean.ClusterID) (*ocean.KubernetesCluster, error) {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting cluster: %w", err)
	}

	var result clusterResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing cluster response: %w", err)
	}

	return result.Cluster, nil
}

// ListPage implements ocean.KubernetesClient.ListPage.
func (c *KubernetesClient) ListPage(ctx context.Context, params *ocean.QueryParams) (*ocean.Page[*ocean.KubernetesCluster], error) {
	query := params.ToValues()

	resp, err := c.httpClient.Get(ctx, "/v2/kubernetes/clusters", query)
	if err != nil {
		return nil, fmt.Errorf("listing clusters: %w", err)
	}

	var result clustersListResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing clusters list response: %w", err)
	}

	return &ocean.Page[*ocean.KubernetesCluster]{
		Items: result.Clusters,
		Links: result.Links,
		Meta:  result.Meta,
	}, nil
}

// ListAll implements ocean.KubernetesClient.ListAll.
func (c *KubernetesClient) ListAll(ctx context.Context) ([]*ocean.KubernetesCluster, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.KubernetesCluster], error) {
		return c.ListPage(ctx, (&ocean.QueryParams{}).WithPage(page))
	})
}

// FindByName implements ocean.KubernetesClient.FindByName.
func (c *KubernetesClient) FindByName(ctx context.Context, name string) (*ocean.KubernetesCluster, bool, error) {
	return ocean.FindFirst(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.KubernetesCluster], error) {
		return c.ListPage(ctx, (&ocean.QueryParams{}).WithPage(page))
	}, func(cluster *ocean.KubernetesCluster) bool {
		return cluster.Name == name
	})
}

// clusterReconciler adapts the client to the reconciliation engine.
type clusterReconciler struct {
	c *KubernetesClient
}

func (r clusterReconciler) Kind() string {
	return "kubernetes cluster"
}

func (r clusterReconciler) Create(ctx context.Context, desired *ocean.ClusterSpec) (*ocean.KubernetesCluster, error) {
	if err := desired.Validate(); err != nil {
		return nil, err
	}

	resp, err := r.c.httpClient.Post(ctx, "/v2/kubernetes/clusters", desired.CreateRequest())
	if err != nil {
		return nil, err
	}

	var result clusterResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing cluster response: %w", err)
	}

	return result.Cluster, nil
}

func (r clusterReconciler) FindByName(ctx context.Context, name string) (*ocean.KubernetesCluster, bool, error) {
	return r.c.FindByName(ctx, name)
}

func (r clusterReconciler) Patch(ctx context.Context, live *ocean.KubernetesCluster, desired *ocean.ClusterSpec) (*ocean.KubernetesCluster, error) {
	req := desired.UpdateRequest(live)
	if !req.IsEmpty() {
		path := fmt.Sprintf("/v2/kubernetes/clusters/%s", live.ID)

		_, err := r.c.httpClient.Put(ctx, path, req)
		if err != nil {
			return nil, err
		}
	}

	// Pool drift travels on the node pool sub-resource, one write per
	// drifted pool.
	for poolID, poolReq := range desired.NodePoolUpdates(live) {
		if _, err := r.c.UpdateNodePool(ctx, live.ID, poolID, poolReq); err != nil {
			return nil, err
		}
	}

	return r.c.Get(ctx, live.ID)
}

// Create implements ocean.KubernetesClient.Create.
func (c *KubernetesClient) Create(ctx context.Context, spec *ocean.ClusterSpec) (ocean.CreateResult[*ocean.KubernetesCluster], error) {
	return ocean.CreateOrConflict(ctx, clusterReconciler{c}, spec)
}

// Update implements ocean.KubernetesClient.Update.
func (c *KubernetesClient) Update(ctx context.Context, live *ocean.KubernetesCluster, spec *ocean.ClusterSpec) (*ocean.KubernetesCluster, bool, error) {
	return ocean.Update(ctx, clusterReconciler{c}, live, spec)
}

// Delete implements ocean.KubernetesClient.Delete.
func (c *KubernetesClient) Delete(ctx context.Context, id ocean.ClusterID) error {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting cluster: %w", err)
	}

	return nil
}

// DeleteWithAssociatedResources implements
// ocean.KubernetesClient.DeleteWithAssociatedResources: the cluster and
// every resource it provisioned (volumes, load balancers) go away.
func (c *KubernetesClient) DeleteWithAssociatedResources(ctx context.Context, id ocean.ClusterID) error {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s/destroy_with_associated_resources/dangerous", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting cluster with associated resources: %w", err)
	}

	return nil
}

// Kubeconfig implements ocean.KubernetesClient.Kubeconfig. The response
// body is kubeconfig YAML, returned verbatim.
func (c *KubernetesClient) Kubeconfig(ctx context.Context, id ocean.ClusterID) ([]byte, error) {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s/kubeconfig", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting kubeconfig: %w", err)
	}

	return resp.Body, nil
}

// CreateNodePool implements ocean.KubernetesClient.CreateNodePool.
func (c *KubernetesClient) CreateNodePool(ctx context.Context, id ocean.ClusterID, req *ocean.NodePoolCreateRequest) (*ocean.NodePool, error) {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s/node_pools", id)

	resp, err := c.httpClient.Post(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("creating node pool: %w", err)
	}

	var result nodePoolResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing node pool response: %w", err)
	}

	return result.NodePool, nil
}

// UpdateNodePool implements ocean.KubernetesClient.UpdateNodePool.
func (c *KubernetesClient) UpdateNodePool(ctx context.Context, id ocean.ClusterID, poolID ocean.NodePoolID, req *ocean.NodePoolUpdateRequest) (*ocean.NodePool, error) {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s/node_pools/%s", id, poolID)

	resp, err := c.httpClient.Put(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("updating node pool: %w", err)
	}

	var result nodePoolResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing node pool response: %w", err)
	}

	return result.NodePool, nil
}

// DeleteNodePool implements ocean.KubernetesClient.DeleteNodePool.
func (c *KubernetesClient) DeleteNodePool(ctx context.Context, id ocean.ClusterID, poolID ocean.NodePoolID) error {
	path := fmt.Sprintf("/v2/kubernetes/clusters/%s/node_pools/%s", id, poolID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting node pool: %w", err)
	}

	return nil
}

// WaitForStatus implements ocean.KubernetesClient.WaitForStatus.
func (c *KubernetesClient) WaitForStatus(ctx context.Context, id ocean.ClusterID, target ocean.ClusterStatus, timeout time.Duration) (*ocean.KubernetesCluster, error) {
	return ocean.WaitForStatus(ctx, "kubernetes cluster", id.String(), string(target),
		func(ctx context.Context) (*ocean.KubernetesCluster, error) {
			return c.Get(ctx, id)
		},
		func(cluster *ocean.KubernetesCluster) string {
			return string(cluster.Status)
		},
		timeout, c.waitOpts)
}

// WaitForDestroy implements ocean.KubernetesClient.WaitForDestroy.
func (c *KubernetesClient) WaitForDestroy(ctx context.Context, id ocean.ClusterID, timeout time.Duration) error {
	return ocean.WaitForDestroy(ctx, "kubernetes cluster", id.String(),
		func(ctx context.Context) (*ocean.KubernetesCluster, error) {
			return c.Get(ctx, id)
		},
		timeout, c.waitOpts)
}
