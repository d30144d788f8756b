package instanceio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/route"
	"github.com/routeforge/hgsvrp/internal/solution"
)

const sampleInstance = `{
  "num_depots": 1,
  "locations": [
    {"id": 0, "tw_late": 1000},
    {"id": 1, "tw_late": 1000, "delivery": [1], "required": true},
    {"id": 2, "tw_late": 1000, "delivery": [1], "required": true}
  ],
  "profiles": [
    {"name": "default", "distance": [[0,1,2],[1,0,1],[2,1,0]], "duration": [[0,1,2],[1,0,1],[2,1,0]]}
  ],
  "vehicle_types": [
    {"id": 0, "count": 1, "capacity": [5], "start_depot": 0, "end_depot": 0, "shift_late": 1000, "profile": 0}
  ]
}`

func TestLoadParsesValidInstance(t *testing.T) {
	pd, err := Load(strings.NewReader(sampleInstance))
	require.NoError(t, err)
	assert.Equal(t, 1, pd.NumDepots())
	assert.Equal(t, 2, pd.NumClients())
}

func TestLoadRejectsMalformedMatrix(t *testing.T) {
	bad := `{
      "num_depots": 1,
      "locations": [{"id": 0}, {"id": 1, "required": true, "delivery": [1]}],
      "profiles": [{"name": "default", "distance": [[0,1]], "duration": [[0,1],[1,0]]}],
      "vehicle_types": [{"id": 0, "count": 1, "capacity": [1], "start_depot": 0, "end_depot": 0, "profile": 0}]
    }`
	_, err := Load(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestWriteSolutionProducesValidJSON(t *testing.T) {
	pd, err := Load(strings.NewReader(sampleInstance))
	require.NoError(t, err)

	r := route.New(pd, 0)
	r.Insert(1, 1)
	r.Insert(2, 2)
	sol := solution.Build(pd, []*route.Route{r}, nil)
	ce := costeval.New(pd, costeval.DefaultPenalties(), costeval.DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, sol, ce))
	assert.Contains(t, buf.String(), "\"feasible\"")
	assert.Contains(t, buf.String(), "\"routes\"")
}
