package app

import (
	"context"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	host, resolver, err := s.buildResolver(ctx, req.ChainPath, req.Probe)
	if err != nil {
		return ValidateResult{}, err
	}
	if err := resolver.Valid(); err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		AppPath:        host.AppPath,
		Frameworks:     host.Frameworks,
		AdditionalDeps: resolver.AdditionalDepsFiles(),
		ProbeDirs:      resolver.ProbeDirs(),
		Probes:         resolver.Probes(),
	}, nil
}
