package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/proposal-board-api/internal/graphql"
)

// createDocument runs step one of the two-step create and returns the new id.
// resultKey is the mutation field, e.g. "Task_createDocument".
func createDocument(ctx context.Context, gw Gateway, endpoint, query, resultKey, name string) (string, error) {
	var out map[string]string
	vars := map[string]any{"name": name, "driveId": gw.DriveID()}
	if err := gw.Do(ctx, endpoint, query, vars, &out); err != nil {
		return "", err
	}

	id := out[resultKey]
	if id == "" {
		return "", fmt.Errorf("%s returned no document id", resultKey)
	}
	return id, nil
}

// mutate runs a state mutation on one document in the configured drive.
func mutate(ctx context.Context, gw Gateway, endpoint, query, id string, input any) error {
	vars := map[string]any{"docId": id, "driveId": gw.DriveID(), "input": input}
	return gw.Do(ctx, endpoint, query, vars, nil)
}

// deleteDocument hard-deletes a document of any type.
func deleteDocument(ctx context.Context, gw Gateway, id string) error {
	return gw.Do(ctx, graphql.EndpointSystem, deleteDocumentMutation, map[string]any{"id": id}, nil)
}
