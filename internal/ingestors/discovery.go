package ingestors

import (
	"context"
	"errors"
	"fmt"

	"loadtest-report/internal/models"
	"loadtest-report/internal/shared/filestorages"
)

// UserDirectory is the result directory of one virtual user, laid out as
// <agent>/<test case>/<user id>/ below the results root.
type UserDirectory struct {
	Key        string
	Provenance models.Provenance
}

// DiscoverDirectories walks the three directory levels below the storage
// root. Plain files on the agent and test case levels are ignored.
func DiscoverDirectories(ctx context.Context, storage filestorages.FileStorage) ([]UserDirectory, error) {
	agents, err := storage.List(ctx, "")
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, errInvalidInputDir(fmt.Sprintf("results directory %q does not exist", storage.Root()), err)
		}
		return nil, errInvalidInputDir(fmt.Sprintf("cannot list results directory %q", storage.Root()), err)
	}

	var dirs []UserDirectory
	for _, agent := range agents {
		if !agent.IsDir {
			continue
		}
		testCases, err := storage.List(ctx, agent.Key)
		if err != nil {
			return nil, errInvalidInputDir(fmt.Sprintf("cannot list agent directory %q", agent.Key), err)
		}
		for _, testCase := range testCases {
			if !testCase.IsDir {
				continue
			}
			users, err := storage.List(ctx, testCase.Key)
			if err != nil {
				return nil, errInvalidInputDir(fmt.Sprintf("cannot list test case directory %q", testCase.Key), err)
			}
			for _, user := range users {
				if !user.IsDir {
					continue
				}
				dirs = append(dirs, UserDirectory{
					Key: user.Key,
					Provenance: models.Provenance{
						AgentName:    agent.Name,
						TestCaseName: testCase.Name,
						UserID:       user.Name,
					},
				})
			}
		}
	}
	return dirs, nil
}
