// Package oceanclient provides the main entry point for creating Ocean
// API clients.
//
// Basic usage:
//
//	client, err := oceanclient.New(&ocean.Config{
//		APIEndpoint: "https://api.ocean.example",
//		AccessToken: os.Getenv("OCEAN_TOKEN"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	droplets, err := client.Droplets().ListAll(ctx)
package oceanclient
