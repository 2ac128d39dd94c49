package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/infra/repository"
	"github.com/BruksfildServices01/shop-api/internal/seed"
)

func seedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Replace every item with the JSON array in file (default " + seed.DefaultFile + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			items, path, err := seed.LoadFile(path)
			if err != nil {
				return err
			}

			var catalog cache.Catalog = cache.Nop{}
			if a.cfg.RedisURL != "" {
				client, err := cache.Dial(ctx, a.cfg.RedisURL)
				if err != nil {
					a.log.WithError(err).Warn("redis unavailable, cached catalog pages expire on their own")
				} else {
					defer client.Close()
					catalog = cache.NewRedis(client, a.cfg.CacheTTL, a.log)
				}
			}

			res, err := seed.Run(ctx, repository.NewItemGormRepository(a.db), catalog, items)
			if err != nil {
				return err
			}
			res.File = path

			return render(cmd.OutOrStdout(), []string{"file", "deleted", "inserted"}, [][]string{
				{res.File, strconv.FormatInt(res.Deleted, 10), strconv.Itoa(res.Inserted)},
			})
		},
	}
}
