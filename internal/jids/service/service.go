package service

import (
	"context"
	"strings"

	"whatsapp_gateway/internal/jids/transport"
	"whatsapp_gateway/platform/jid"
	"whatsapp_gateway/platform/logger"
	"whatsapp_gateway/platform/phone"

	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 8

// Service resolves raw identifiers into JIDs and describes them.
type Service struct {
	phones *phone.Normalizer
	log    *logger.Logger
}

// New creates a new JID service.
func New(phones *phone.Normalizer, log *logger.Logger) *Service {
	return &Service{phones: phones, log: log}
}

// Resolve returns the canonical JID for raw. With national set, bare numbers
// are first read as national numbers of the default region.
func (s *Service) Resolve(raw string, national bool) jid.Address {
	if national && !strings.Contains(raw, "@") {
		raw = strings.TrimPrefix(s.phones.NormalizeE164(raw), "+")
	}
	return jid.Parse(raw)
}

// Normalize resolves a single identifier.
func (s *Service) Normalize(ctx context.Context, raw string, national bool) transport.JIDResponse {
	addr := s.Resolve(raw, national)
	resp := toResponse(raw, addr)

	s.log.WithContext(ctx).Debug("jid normalized",
		"class", resp.Class,
		"jid", resp.JID,
		"region", resp.Region,
	)
	return resp
}

// NormalizeBatch resolves identifiers concurrently and returns them in input order.
func (s *Service) NormalizeBatch(ctx context.Context, raws []string, national bool) (transport.NormalizeBatchResponse, error) {
	items := make([]transport.JIDResponse, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = toResponse(raw, s.Resolve(raw, national))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return transport.NormalizeBatchResponse{}, err
	}

	s.log.WithContext(ctx).Debug("jid batch normalized", "count", len(items))
	return transport.NormalizeBatchResponse{Items: items, Total: len(items)}, nil
}

func toResponse(raw string, addr jid.Address) transport.JIDResponse {
	resp := transport.JIDResponse{
		Input:  raw,
		JID:    addr.String(),
		Class:  addr.Class.String(),
		User:   addr.User,
		Server: addr.Server,
	}

	switch addr.Class {
	case jid.ClassUserNumber, jid.ClassCanonicalUser:
		info := phone.Lookup(addr.User)
		resp.Region = info.Region
		resp.CountryCode = info.CountryCode
		resp.E164 = info.E164
	}

	return resp
}
