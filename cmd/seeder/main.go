package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/certavo/certavo-backend/internal/codegen"
	"github.com/certavo/certavo-backend/internal/config"
	"github.com/certavo/certavo-backend/internal/logger"
	"github.com/certavo/certavo-backend/internal/model"
	"github.com/certavo/certavo-backend/internal/store"
)

// Seeds a demo campaign into the Postgres store for local testing.
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("")
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.AppEnv)

	st, err := store.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to postgres")
	}
	if err := st.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("cannot ensure schema")
	}

	id, err := st.Create()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create demo campaign")
	}

	names := []struct{ name, email string }{
		{"Alice Smith", "alice@example.com"},
		{"Bob Jones", "bob@example.com"},
		{"Carla Díaz", "carla@example.com"},
	}
	existing := map[string]struct{}{}
	students := []model.Student{}
	for _, n := range names {
		code, err := codegen.Generate(existing)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot generate code")
		}
		existing[code] = struct{}{}
		students = append(students, model.Student{Name: n.name, Email: n.email, Code: code})
	}
	if err := st.AppendStudents(id, students); err != nil {
		log.Fatal().Err(err).Msg("cannot seed students")
	}

	message := "Hola {nombre}, tu código es {codigo}. Descarga tu certificado en {url}."
	if err := st.SetMessage(id, message); err != nil {
		log.Fatal().Err(err).Msg("cannot seed message")
	}

	fmt.Printf("Seeded demo campaign %s with %d students\n", id, len(students))
}
