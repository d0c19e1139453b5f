package main

import (
	"fmt"
	"os"

	"github.com/noah-isme/escola-api/internal/cli"
)

// @title Escola API
// @version 1.0.0
// @description School management API: professores, alunos, cursos, turmas and matrículas.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
