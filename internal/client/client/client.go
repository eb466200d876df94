package client

import "context"

// Record is a company record as exchanged with the server.
type Record struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Exchange string  `json:"exchange"`
	Ticker   string  `json:"ticker"`
	ISIN     string  `json:"isin"`
	Website  *string `json:"website"`
}

type Client interface {
	// Authenticate exchanges a passcode for a session and returns the
	// display name. The token is kept by the transport, never returned.
	Authenticate(ctx context.Context, passcode string) (string, error)
	// Verify performs one session check against the server.
	Verify(ctx context.Context) error
	// Logout discards the local session token.
	Logout(ctx context.Context) error

	FetchRecords(ctx context.Context) ([]Record, error)
	SearchRecords(ctx context.Context, query string) ([]Record, error)
	CreateRecord(ctx context.Context, rec Record) error
	UpdateRecord(ctx context.Context, rec Record) (*Record, error)
}
