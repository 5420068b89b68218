package page

import (
	"testing"

	"github.com/rs/zerolog"

	"library-admin/internal/apiclient"
	"library-admin/internal/apitest"
	"library-admin/internal/notify"
)

func newTestWorkspace(t *testing.T) (*Workspace, *apitest.API, *notify.Queue) {
	t.Helper()
	api, srv := apitest.NewServer(t)
	queue := &notify.Queue{}
	client := apiclient.New(srv.URL, apiclient.WithHTTPClient(srv.Client()))
	return NewWorkspace(client, queue, zerolog.Nop()), api, queue
}

func levels(msgs []notify.Message) []notify.Level {
	out := make([]notify.Level, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Level)
	}
	return out
}
