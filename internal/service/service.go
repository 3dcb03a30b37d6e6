// Package service implements the conversation session manager.
package service

import (
	"github.com/petalcare/chatd/internal/adapter/llm"
	"github.com/petalcare/chatd/internal/config"
	"github.com/petalcare/chatd/internal/policy"
	"github.com/petalcare/chatd/internal/store"
)

type Service struct {
	store  store.Store
	llm    llm.CompletionClient
	policy *policy.Engine
	config *config.Config
	locks  userLocks
}

func New(st store.Store, client llm.CompletionClient, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:  st,
		llm:    client,
		policy: policyEngine,
		config: cfg,
	}
}
