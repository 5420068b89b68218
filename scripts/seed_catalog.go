package main

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"library-admin/internal/apiclient"
	"library-admin/internal/config"
	"library-admin/internal/logger"
	"library-admin/internal/models"
	"library-admin/internal/notify"
	"library-admin/internal/page"
)

type seedBook struct {
	Name            string
	PublicationYear int
	Stock           int
	Author          string
	Publisher       string
	Category        string
}

var (
	publishers = []map[string]string{
		{"name": "Penguin Books", "address": "London", "establishmentYear": "1935"},
		{"name": "Yapi Kredi Yayinlari", "address": "Istanbul", "establishmentYear": "1945"},
		{"name": "Can Yayinlari", "address": "Istanbul", "establishmentYear": "1981"},
	}

	categories = []map[string]string{
		{"name": "Novel", "description": "Long-form fiction"},
		{"name": "Classics", "description": "Works that outlived their century"},
		{"name": "Psychology", "description": "How people think and decide"},
	}

	authors = []map[string]string{
		{"name": "Orhan Pamuk", "birthDate": "1952-06-07", "country": "Turkey"},
		{"name": "Yasar Kemal", "birthDate": "1923-10-06", "country": "Turkey"},
		{"name": "George Orwell", "birthDate": "1903-06-25", "country": "United Kingdom"},
		{"name": "Daniel Kahneman", "birthDate": "1934-03-05", "country": "Israel"},
	}

	books = []seedBook{
		{"Kar", 2002, 3, "Orhan Pamuk", "Can Yayinlari", "Novel"},
		{"Benim Adim Kirmizi", 1998, 2, "Orhan Pamuk", "Can Yayinlari", "Novel"},
		{"Ince Memed", 1955, 4, "Yasar Kemal", "Yapi Kredi Yayinlari", "Classics"},
		{"Nineteen Eighty-Four", 1949, 5, "George Orwell", "Penguin Books", "Classics"},
		{"Animal Farm", 1945, 2, "George Orwell", "Penguin Books", "Classics"},
		{"Thinking, Fast and Slow", 2011, 2, "Daniel Kahneman", "Penguin Books", "Psychology"},
	}
)

var errNoID = errors.New("created record could not be found in the reloaded list")

// create submits one draft and returns the id the API assigned. A create
// answered without a body is looked up by name in the reloaded list.
func create[T models.Record](ctx context.Context, p *page.Page[T], fields map[string]string, name func(T) string) (int, error) {
	for field, value := range fields {
		if err := p.SetField(field, value); err != nil {
			return 0, err
		}
	}
	saved, err := p.Submit(ctx)
	if err != nil {
		p.Cancel()
		return 0, err
	}
	if id := saved.GetID(); id != 0 {
		return id, nil
	}

	id := 0
	for _, item := range p.View().Items() {
		if name(item) == fields["name"] && item.GetID() > id {
			id = item.GetID()
		}
	}
	if id == 0 {
		return 0, errNoID
	}
	return id, nil
}

// seedResult counts what one seeding run did.
type seedResult struct {
	Books   int
	Skipped int
	Failed  int
}

func seedCatalog(ctx context.Context, ws *page.Workspace, log zerolog.Logger) seedResult {
	var res seedResult
	ids := map[string]int{}

	record := func(key string, id int, err error) {
		if err != nil {
			log.Warn().Err(err).Str("record", key).Msg("seed failed")
			res.Failed++
			return
		}
		ids[key] = id
	}

	for _, fields := range publishers {
		id, err := create(ctx, ws.Publishers, fields, func(p models.Publisher) string { return p.Name })
		record("publisher:"+fields["name"], id, err)
	}
	for _, fields := range categories {
		id, err := create(ctx, ws.Categories, fields, func(c models.Category) string { return c.Name })
		record("category:"+fields["name"], id, err)
	}
	for _, fields := range authors {
		id, err := create(ctx, ws.Authors, fields, func(a models.Author) string { return a.Name })
		record("author:"+fields["name"], id, err)
	}

	for _, b := range books {
		authorID, okA := ids["author:"+b.Author]
		publisherID, okP := ids["publisher:"+b.Publisher]
		categoryID, okC := ids["category:"+b.Category]
		if !okA || !okP || !okC {
			log.Warn().Str("book", b.Name).Msg("skipping book with an unseeded reference")
			res.Skipped++
			continue
		}

		_, err := create(ctx, ws.Books, map[string]string{
			"name":            b.Name,
			"publicationYear": strconv.Itoa(b.PublicationYear),
			"stock":           strconv.Itoa(b.Stock),
			"authorId":        strconv.Itoa(authorID),
			"publisherId":     strconv.Itoa(publisherID),
			"categoryId":      strconv.Itoa(categoryID),
		}, func(bk models.Book) string { return bk.Name })
		if err != nil && !errors.Is(err, errNoID) {
			res.Failed++
			continue
		}
		res.Books++
	}
	return res
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.Get(cfg.Debug)

	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.APITimeout), apiclient.WithLogger(log))
	ws := page.NewWorkspace(client, notify.Logged{Log: log}, log)

	log.Info().Str("api", client.BaseURL()).Msg("seeding catalog")
	res := seedCatalog(context.Background(), ws, log)

	log.Info().Int("books", res.Books).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("catalog seeded")
	if res.Failed > 0 || res.Skipped > 0 {
		os.Exit(1)
	}
}
