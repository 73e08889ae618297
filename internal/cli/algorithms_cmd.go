package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/cli/formatter"
)

func newAlgorithmsCmd(app *App) *cobra.Command {
	var showParams bool

	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the registered scheduling strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors := algorithm.Descriptors()
			fmt.Println(formatter.AlgorithmTable(descriptors))

			if !showParams {
				return nil
			}
			for _, d := range descriptors {
				if len(d.Params) == 0 {
					continue
				}
				fmt.Println(formatter.Header(d.Tag))
				rows := make([][]string, len(d.Params))
				for i, p := range d.Params {
					rows[i] = []string{p.Name, string(p.Type), fmt.Sprint(p.Default), p.Description}
				}
				fmt.Println(formatter.RenderTable([]string{"PARAM", "TYPE", "DEFAULT", "DESCRIPTION"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showParams, "params", false, "Show each strategy's recognized parameters")
	return cmd
}
