// Package ocean defines the public surface of the Ocean API client: typed
// resources and identifiers, desired-state specs, the reconcile engine,
// the wait-for-status loop, pagination helpers, and the error taxonomy.
//
// Construct a client with the oceanclient package:
//
//	c, err := oceanclient.New(&ocean.Config{
//		APIEndpoint: "https://api.ocean.example",
//		AccessToken: os.Getenv("OCEAN_TOKEN"),
//	})
//
// All operations are synchronous and blocking; cancellation and deadlines
// are carried by the context passed to each call. Snapshots returned by
// the client are immutable: to observe newer state, fetch again.
package ocean
