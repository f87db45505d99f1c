package serialization

import (
	"strconv"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/fcnn"
	"github.com/pkg/errors"
)

// FromNetwork captures the parameters of net together with its activation
// name and gradient mode.
func FromNetwork(net *fcnn.Network) *State {
	weights, biases := net.Parameters()
	return &State{
		Weights: weights,
		Biases:  biases,
		Metadata: map[string]string{
			MetaActivation: activation.NameOf(net.Activation()),
			MetaTextbook:   strconv.FormatBool(net.TextbookGradient()),
		},
	}
}

// Network rebuilds a network from the state.
//
// When cfg.Activation is nil the activation recorded in the metadata is looked
// up in the activation registry. A recorded textbook gradient mode is
// restored unless cfg already enables it.
func (s *State) Network(cfg fcnn.Config) (*fcnn.Network, error) {
	if cfg.Activation == nil {
		if name, ok := s.Metadata[MetaActivation]; ok {
			f, err := activation.ByName(name)
			if err != nil {
				return nil, errors.WithMessage(err, "checkpoint activation")
			}
			cfg.Activation = f
		}
	}
	if textbook, err := strconv.ParseBool(s.Metadata[MetaTextbook]); err == nil && textbook {
		cfg.TextbookGradient = true
	}
	net, err := fcnn.FromParameters(s.Weights, s.Biases, cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "checkpoint parameters")
	}
	return net, nil
}
