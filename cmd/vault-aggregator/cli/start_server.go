package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vaultscope/vault-aggregator/internal/clients/apiclient"
	"github.com/vaultscope/vault-aggregator/internal/clients/chainclient"
	"github.com/vaultscope/vault-aggregator/internal/clients/graphclient"
	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/observability/metrics"
	"github.com/vaultscope/vault-aggregator/internal/observability/tracing"
	"github.com/vaultscope/vault-aggregator/internal/providers"
	"github.com/vaultscope/vault-aggregator/internal/resolver"
	"github.com/vaultscope/vault-aggregator/internal/server"
	"github.com/vaultscope/vault-aggregator/internal/services"
	"github.com/vaultscope/vault-aggregator/internal/txbuilder"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the vault aggregation server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	var apiClient apiclient.ApiInterface = apiclient.NewClient(&cfg.API)
	apiClient = apiclient.NewApiClientWithMetrics(apiClient)

	var graphClient graphclient.GraphInterface = graphclient.NewClient(&cfg.Graph)
	graphClient = graphclient.NewGraphClientWithMetrics(graphClient)

	var chainClient chainclient.ChainInterface
	chainClient, err = chainclient.NewClient(&cfg.Chain)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating chain client")
	}
	chainClient = chainclient.NewChainClientWithMetrics(chainClient)

	apiAdapter := providers.NewAPIAdapter(apiClient)
	graphAdapter := providers.NewGraphAdapter(graphClient, chainClient, cfg.Chain.EnrichTimeout)
	chainAdapter := providers.NewChainAdapter(chainClient)

	byProvider := map[types.Provider]providers.Adapter{
		types.ProviderAPI:   apiAdapter,
		types.ProviderGraph: graphAdapter,
		types.ProviderChain: chainAdapter,
	}
	var adapters []providers.Adapter
	for _, p := range cfg.Resolver.PriorityProviders() {
		adapters = append(adapters, byProvider[p])
	}

	rslv := resolver.New(cfg.Resolver.Curated, adapters, apiAdapter)
	builder := txbuilder.New(chainClient)

	service := services.New(cfg, rslv, graphAdapter, adapters, builder)
	defer service.Stop()

	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	srv := server.New(&cfg.Server, service, cfg.Chain.ChainIDs())
	return srv.Start()
}
