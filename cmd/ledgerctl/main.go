// file: cmd/ledgerctl/main.go
// ledgerctl: perintah operasional di luar HTTP server (migrasi, seeding).
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	"sekolahku_backend/internals/seeds"
)

func main() {
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Perintah operasional backend keuangan sekolah",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
			database.ConnectDB()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Jalankan auto-migration skema database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(database.DB); err != nil {
				return err
			}
			log.Println("[INFO] migrasi selesai")
			return nil
		},
	}

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi data awal dari file YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(database.DB); err != nil {
				return err
			}
			if err := seeds.Run(database.DB, seedFile); err != nil {
				return err
			}
			log.Println("[INFO] seeding selesai")
			return nil
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds.yaml", "path file seed YAML")

	root.AddCommand(migrateCmd, seedCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
