package cloudclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rflorenc/cloud-resource-workbench/internal/api"
	"github.com/rflorenc/cloud-resource-workbench/internal/cloudclient"
	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
	"github.com/rflorenc/cloud-resource-workbench/internal/property"
)

func TestClientAgainstServer(t *testing.T) {
	srv := api.NewServer(zap.NewNop())
	ts := httptest.NewServer(api.NewRouter(srv))
	defer ts.Close()

	ctx := context.Background()
	c := cloudclient.New(ts.URL, cloudclient.WithUser("bob"))

	sec, err := c.CreateSecret(ctx, &models.Secret{
		Name: "tc", Vendor: enumor.TCloud, CloudSecretID: "AKID", CloudSecretKey: "key",
		Resources: map[enumor.ResourceType]int{enumor.ClbResType: 2, enumor.CvmResType: 1},
	})
	require.NoError(t, err)
	assert.NotEqual(t, "key", sec.CloudSecretKey)

	secrets, err := c.ListSecrets(ctx, enumor.TCloud)
	require.NoError(t, err)
	require.Len(t, secrets, 1)

	items, err := c.ResCountsBySecrets(ctx, enumor.TCloud, map[string]string{"main": sec.ID})
	require.NoError(t, err)
	require.Len(t, items, len(enumor.ResourceTypes()))
	assert.Equal(t, models.ResourceCount{Type: enumor.CvmResType, Count: 1}, items[0])

	_, err = c.ResCountsBySecrets(ctx, enumor.Aws, map[string]string{"main": sec.ID})
	var apiErr *cloudclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	props, err := c.TaskProperties(ctx)
	require.NoError(t, err)
	require.NoError(t, props.Validate())

	taskID, err := c.SyncSecret(ctx, sec.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		task, err := c.GetTask(ctx, taskID)
		return err == nil && task.State.Finished()
	}, 5*time.Second, 50*time.Millisecond)

	list, err := c.ListTasks(ctx, &property.Filter{Rules: []property.Rule{
		{Field: property.TaskCreator, Op: enumor.In, Value: []string{"bob"}},
	}}, models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Details, 1)
	assert.Equal(t, enumor.TaskSuccess, list.Details[0].State)
}
