package content

import (
	"context"

	"itsolutions/internal/latency"
)

// Stores is every content store the site edits.
type Stores struct {
	Home     HomeStore
	About    AboutStore
	Contact  ContactStore
	Services ServiceStore
	Products ProductStore
	Profiles *ProfileStore
}

// Open loads each store from backend, seeding what is missing.
func Open(ctx context.Context, backend Backend, lat latency.Profile) (*Stores, error) {
	home, err := NewDocument(ctx, backend, "home", "home page", SeedHome(), lat.Save)
	if err != nil {
		return nil, err
	}
	about, err := NewDocument(ctx, backend, "about", "about page", SeedAbout(), lat.Save)
	if err != nil {
		return nil, err
	}
	contact, err := NewDocument(ctx, backend, "contact", "contact info", SeedContact(), lat.Save)
	if err != nil {
		return nil, err
	}
	cl := Latencies{Save: lat.Save, Delete: lat.Delete}
	services, err := NewCollection(ctx, backend, "services", "service", SeedServices(), cl)
	if err != nil {
		return nil, err
	}
	products, err := NewCollection(ctx, backend, "products", "product", SeedProducts(), cl)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Home:     HomeStore{home},
		About:    AboutStore{about},
		Contact:  ContactStore{contact},
		Services: ServiceStore{services},
		Products: ProductStore{products},
		Profiles: NewProfileStore(backend, lat.Fetch),
	}, nil
}
