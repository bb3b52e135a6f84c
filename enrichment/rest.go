package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/internal/httpclient"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

// RESTInteractionSource fetches interaction annotations for a chain from a
// remote provider. The provider answers GET {base}/{structure}/{chain} with
// a JSON object mapping interaction types to lists of partner coordinates.
type RESTInteractionSource struct {
	BaseURL  string
	Username string
	Password string
	Client   *httpclient.Guarded
}

// NewRESTInteractionSource creates a source with a guarded default client.
func NewRESTInteractionSource(baseURL string) *RESTInteractionSource {
	return &RESTInteractionSource{
		BaseURL: baseURL,
		Client:  httpclient.New(30*time.Second, httpclient.Options{}),
	}
}

type interactionResponse map[string][][][3]float64

func (s *RESTInteractionSource) Interactions(ctx context.Context, identifier model.DataPointIdentifier) ([]Interaction, bool, error) {
	endpoint, err := url.JoinPath(s.BaseURL, identifier.StructureID, identifier.ChainID)
	if err != nil {
		return nil, false, errors.Wrap(err, "composing annotation URL")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, false, errors.Wrapf(err, "parsing annotation URL %s", endpoint)
	}
	if err := s.Client.ValidateURL(parsed); err != nil {
		return nil, false, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "building annotation request")
	}
	if s.Username != "" {
		request.SetBasicAuth(s.Username, s.Password)
	}

	response, err := s.Client.Do(request)
	if err != nil {
		return nil, false, errors.Wrapf(err, "querying interactions for %s", identifier)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		logger.Logger.Debugw("no interaction annotations available", "data_point", identifier.String())
		return nil, false, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, false, errors.Newf("annotation provider returned %s for %s", response.Status, identifier)
	}

	var decoded interactionResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, false, errors.Wrapf(err, "decoding interactions for %s", identifier)
	}
	return flattenInteractions(decoded), true, nil
}

func flattenInteractions(decoded interactionResponse) []Interaction {
	var interactions []Interaction
	for _, interactionType := range []InteractionType{
		HalogenBond, HydrogenBond, Hydrophobic, MetalComplex,
		PiCation, PiStacking, SaltBridge, WaterBridge,
	} {
		for _, coordinates := range decoded[string(interactionType)] {
			interaction := Interaction{Type: interactionType}
			for _, position := range coordinates {
				interaction.Coordinates = append(interaction.Coordinates,
					r3.Vec{X: position[0], Y: position[1], Z: position[2]})
			}
			interactions = append(interactions, interaction)
		}
	}
	return interactions
}
