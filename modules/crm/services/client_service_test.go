package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/modules/crm/domain/aggregates/client"
	"github.com/ledgerflow/practice-sdk/modules/crm/services"
)

func names(clients []client.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.Name()
	}
	return out
}

func TestRankByName_DropsNonMatches(t *testing.T) {
	t.Parallel()

	clients := []client.Client{
		client.New("Acme Holdings"),
		client.New("Brightline Consulting"),
		client.New("Acorn Bakery"),
	}

	ranked := services.RankByName("acme", clients)
	require.Equal(t, []string{"Acme Holdings"}, names(ranked))
}

func TestRankByName_ToleratesPartialAndCaseDifferences(t *testing.T) {
	t.Parallel()

	clients := []client.Client{
		client.New("Brightline Consulting"),
		client.New("Bright & Sons"),
		client.New("Dockside Freight"),
	}

	ranked := services.RankByName("BRIGHT", clients)
	require.Len(t, ranked, 2)
	require.NotContains(t, names(ranked), "Dockside Freight")
}

func TestRankByName_BetterMatchRanksFirst(t *testing.T) {
	t.Parallel()

	clients := []client.Client{
		client.New("Greenwood Partners Limited"),
		client.New("Green"),
	}

	ranked := services.RankByName("green", clients)
	require.Equal(t, []string{"Green", "Greenwood Partners Limited"}, names(ranked))
}

func TestRankByName_EmptyQueryReturnsInput(t *testing.T) {
	t.Parallel()

	clients := []client.Client{
		client.New("Zeta"),
		client.New("Alpha"),
	}

	ranked := services.RankByName("", clients)
	require.Equal(t, []string{"Zeta", "Alpha"}, names(ranked))
}
