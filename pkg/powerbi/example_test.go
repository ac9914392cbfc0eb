package powerbi_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/powerbi-community/powerbi-go/pkg/powerbi"
	"github.com/powerbi-community/powerbi-go/pkg/resource"
	"github.com/powerbi-community/powerbi-go/pkg/transport"
)

func Example() {
	ctx := context.Background()

	session, err := transport.NewSession(transport.Config{
		TokenSource: transport.StaticToken(os.Getenv("POWERBI_TOKEN")),
	})
	if err != nil {
		log.Fatal(err)
	}
	client := powerbi.New(session)

	// References are either bare ids or entities; both work anywhere a
	// resource is named.
	datasets, err := client.Datasets(ctx, resource.ID("f089354e-8366-4e18-aea3-4cb4a3a50b48"),
		resource.Query{Top: resource.Int(10)})
	if err != nil {
		log.Fatal(err)
	}

	for _, ds := range datasets {
		// List elements are pre-hydrated: no extra round trip here.
		name, err := ds.StringAttr("name")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(ds.ID(), name)
	}
}
