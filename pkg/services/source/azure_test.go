package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/de-tools/procurement-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBlobGetter struct {
	mock.Mock
}

func (m *mockBlobGetter) Download(ctx context.Context, container, blob string) (io.ReadCloser, error) {
	args := m.Called(ctx, container, blob)
	if body, ok := args.Get(0).(string); ok {
		return io.NopCloser(strings.NewReader(body)), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAzureSource(t *testing.T) {
	// Given a container holding a spreadsheet export and a category table
	ctx := context.Background()
	client := new(mockBlobGetter)
	client.On("Download", ctx, "procurement", "2024/plan.csv").
		Return("Denumire;Cod CPV;Valoare fara TVA\nMotorina;09134100-8;12.500\n", nil)
	client.On("Download", ctx, "procurement", "2024/cpv.json").
		Return(`{"categories":[{"code":"09134100-8","name_local":"Motorina"}]}`, nil)

	// When
	src := NewAzureSource(client, "procurement", "2024/plan.csv", "2024/cpv.json")
	recs, cats, err := Load(ctx, src)

	// Then
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Motorina", recs[0].ObjectName)
	assert.InDelta(t, 12500.0, recs[0].ValueExclTax, 1e-9)
	assert.Equal(t, "Motorina", cats["09134100-8"].NameLocal)
	client.AssertExpectations(t)
}

func TestAzureSource_Errors(t *testing.T) {
	ctx := context.Background()
	client := new(mockBlobGetter)
	client.On("Download", ctx, "procurement", "missing.csv").
		Return(nil, &azcore.ResponseError{ErrorCode: "BlobNotFound", StatusCode: http.StatusNotFound})
	client.On("Download", ctx, "procurement", "plan.csv").Return(nil, errors.New("authorization failed"))

	t.Run("missing blob", func(t *testing.T) {
		_, err := NewAzureSource(client, "procurement", "missing.csv", "").Records(ctx)
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})

	t.Run("download failure", func(t *testing.T) {
		_, err := NewAzureSource(client, "procurement", "plan.csv", "").Records(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "procurement/plan.csv")
		assert.Contains(t, err.Error(), "authorization failed")
	})

	t.Run("no categories blob", func(t *testing.T) {
		cats, err := NewAzureSource(client, "procurement", "plan.csv", "").Categories(ctx)
		require.NoError(t, err)
		assert.Empty(t, cats)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewAzureSource(client, "procurement", "plan.pdf", "").Records(ctx)
		assert.Error(t, err)
	})

	t.Run("factory requires container and account", func(t *testing.T) {
		_, err := AzureFactory(ctx, domain.SourceProfile{Name: "nocontainer", Type: domain.SourceTypeAzure})
		assert.Error(t, err)

		_, err = AzureFactory(ctx, domain.SourceProfile{
			Name:     "noaccount",
			Type:     domain.SourceTypeAzure,
			Settings: map[string]string{"container": "procurement", "records": "plan.csv"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "account")
	})
}
