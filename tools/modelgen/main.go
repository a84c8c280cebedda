package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// modelgen regenerates internal/adapter/repo/gorm/model from a migrated
// database. Run it after adding a migration under db/migrations.
func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("WILDCRAFT_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/query", "output dir for generated query code; models land in the sibling model dir")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or WILDCRAFT_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       out,
		ModelPkgPath:  "model",
		Mode:          gen.WithoutContext,
		FieldNullable: false,
	})
	g.UseDB(db)
	g.ApplyBasic(
		g.GenerateModel("game_states"),
		g.GenerateModel("action_executions"),
		g.GenerateModel("domain_events"),
	)
	g.Execute()

	fmt.Printf("generated gorm models next to %s\n", out)
}
