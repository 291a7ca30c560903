package firebase

import (
	"context"

	"cloud.google.com/go/firestore"
	firebaseSDK "firebase.google.com/go"
	"google.golang.org/api/option"
)

// NewFirestoreClient initializes a Firebase app from the given service account
// key and returns its Firestore client. The client is passed explicitly into
// each repository rather than held as a package global.
func NewFirestoreClient(ctx context.Context, credentialsFile string) (*firestore.Client, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebaseSDK.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, err
	}

	return app.Firestore(ctx)
}
