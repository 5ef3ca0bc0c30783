package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	// Listing a single user exercises the credentialed connection without
	// mutating anything.
	iter := f.client.Users(ctx, "")
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}
