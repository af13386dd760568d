package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oltcmd/oltcmd/internal/catalog"
	"github.com/oltcmd/oltcmd/internal/model"
	"github.com/oltcmd/oltcmd/internal/service"
	"github.com/oltcmd/oltcmd/internal/util"
)

func (a *app) vendorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "Lista os modelos de OLT",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, v := range a.wb.Vendors() {
				a.out.Line("%s  %s", a.out.title.Render(v.Name), a.out.muted.Render(v.Description))
			}
			return nil
		},
	}
}

func (a *app) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <olt>",
		Short: "Mostra as categorias e comandos de uma OLT",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			items, err := a.wb.Tree(args[0])
			if err != nil {
				return err
			}
			a.out.Tree(items, 0)
			return nil
		},
	}
}

func (a *app) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <olt> <caminho...>",
		Short: "Mostra o comando, parâmetros e dicas",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			sel, err := a.wb.Select(args[0], splitPath(args[1:]))
			if err != nil {
				return err
			}
			a.printSelection(sel)
			return nil
		},
	}
}

func (a *app) printSelection(sel *service.Selection) {
	a.out.Breadcrumb(sel.Vendor + " > " + sel.Breadcrumb)
	if sel.IsFavorite {
		a.out.Muted("★ favorito")
	}
	a.out.Command(sel.Template)
	if len(sel.Form.Fields) > 0 {
		a.out.Title("Parâmetros")
		for _, f := range sel.Form.Fields {
			help := ""
			if !f.Composite {
				help = sel.ParamHelp[f.Name]
			}
			a.out.Line("  %-28s %s", f.Label, a.out.muted.Render(help))
		}
	}
	if len(sel.FirmwareModels) > 0 {
		a.out.Line("  Modelo ONU: %s (padrão %s)", strings.Join(sel.FirmwareModels, ", "), sel.DefaultModel)
	}
	if sel.Example != nil {
		a.out.Title("Exemplo")
		a.out.Line("  %s", sel.Example.Description)
		a.out.Command("  " + sel.Example.Example)
	}
	for _, issue := range sel.Issues {
		a.out.Muted(issue)
	}
	if len(sel.Tips) > 0 {
		a.out.Title("Dicas")
		for _, tip := range sel.Tips {
			a.out.Line("  %s", tip)
		}
	}
}

func (a *app) resolveCommand() *cobra.Command {
	var (
		sets     []string
		ponID    string
		onuModel string
		doCopy   bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <olt> <caminho...>",
		Short: "Substitui os parâmetros e (opcionalmente) copia o comando",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := splitPath(args[1:])
			sel, err := a.wb.Select(args[0], path)
			if err != nil {
				return err
			}
			values, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			res := a.wb.Preview(service.PreviewRequest{
				Template: sel.Template,
				Values:   values,
				PonID:    ponID,
				ONUModel: onuModel,
			})
			for _, h := range res.Hints {
				a.out.Warn(h)
			}
			for _, e := range res.Errors {
				a.out.Warn(e)
			}
			a.out.Command(res.Command)
			if len(res.Unresolved) > 0 {
				a.out.Muted("Parâmetros pendentes: " + strings.Join(res.Unresolved, ", "))
			}
			if doCopy {
				if _, err := a.wb.Copy(cmd.Context(), service.CopyRequest{Command: res.Command, Vendor: args[0], Path: path}); err != nil {
					return err
				}
				a.out.Muted("Comando copiado para a área de transferência!")
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "parâmetro nome=valor (repetível)")
	cmd.Flags().StringVar(&ponID, "pon-id", "", "PON ID no formato slot/porta/pon")
	cmd.Flags().StringVar(&onuModel, "onu-model", "", "modelo da ONU para o firmware")
	cmd.Flags().BoolVar(&doCopy, "copy", false, "copiar e registrar no histórico")
	return cmd
}

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <nome=valor...>",
		Short: "Valida o formato dos parâmetros",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			values, err := parseAssignments(args)
			if err != nil {
				return err
			}
			errs := a.wb.Validate(values)
			if len(errs) == 0 {
				a.out.Line("OK")
				return nil
			}
			for _, e := range errs {
				a.out.Warn(fmt.Sprintf("%s (%q)", e.Message, e.Value))
			}
			return fmt.Errorf("%d parâmetro(s) inválido(s)", len(errs))
		},
	}
}

func (a *app) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <texto>",
		Short: "Busca comandos em todas as OLTs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			results := a.wb.Search(strings.Join(args, " "))
			if len(results) == 0 {
				a.out.Muted("Nenhum comando encontrado")
				return nil
			}
			for _, r := range results {
				a.out.Breadcrumb(r.Vendor + catalog.SearchSeparator + r.PathText)
				a.out.Command("  " + firstLine(r.Command))
			}
			return nil
		},
	}
}

func (a *app) historyCommand() *cobra.Command {
	var (
		limit    int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Comandos copiados recentemente",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if clearAll {
				a.wb.ClearHistory()
				a.out.Muted("Histórico limpo")
				return nil
			}
			for _, e := range a.wb.History(limit) {
				a.out.Line("%s  %s", a.out.muted.Render(e.Timestamp.Format(model.TimestampLayout)), a.out.path.Render(e.OLTModel+" > "+e.Category))
				a.out.Command("  " + firstLine(e.Command))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "quantidade (padrão: configuração; negativo = todos)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "limpar histórico")
	return cmd
}

func (a *app) favCommand() *cobra.Command {
	fav := &cobra.Command{
		Use:   "fav",
		Short: "Gerencia favoritos",
	}

	var name string
	var sets []string
	add := &cobra.Command{
		Use:   "add <olt> <caminho...>",
		Short: "Adiciona o comando aos favoritos",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			path := splitPath(args[1:])
			sel, err := a.wb.Select(args[0], path)
			if err != nil {
				return err
			}
			params, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			f, err := a.wb.AddFavorite(service.FavoriteRequest{
				Name:    name,
				Command: sel.Template,
				Vendor:  args[0],
				Path:    path,
				Params:  params,
			})
			if err != nil {
				return err
			}
			a.out.Muted("Comando adicionado aos favoritos! (" + f.ID + ")")
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "nome do favorito (padrão: último nível do caminho)")
	add.Flags().StringArrayVarP(&sets, "set", "s", nil, "parâmetro salvo nome=valor")

	var id string
	rm := &cobra.Command{
		Use:   "rm [comando]",
		Short: "Remove favoritos pelo comando ou --id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			command := ""
			if len(args) == 1 {
				command = args[0]
			}
			if command == "" && id == "" {
				return fmt.Errorf("informe o comando ou --id")
			}
			n := a.wb.RemoveFavorite(command, id)
			a.out.Muted(fmt.Sprintf("%d favorito(s) removido(s)", n))
			return nil
		},
	}
	rm.Flags().StringVar(&id, "id", "", "id do favorito")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "Lista favoritos",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, f := range a.wb.Favorites() {
				a.out.Line("%s  %s", a.out.title.Render(f.Name), a.out.muted.Render(f.ID))
				a.out.Breadcrumb("  " + f.OLTModel + " > " + f.Category)
				a.out.Command("  " + firstLine(f.Command))
			}
			return nil
		},
	}

	fav.AddCommand(add, rm, ls)
	return fav
}

func (a *app) catalogCommand() *cobra.Command {
	cat := &cobra.Command{
		Use:   "catalog",
		Short: "Exporta ou importa o catálogo de comandos",
	}

	var format string
	export := &cobra.Command{
		Use:   "export",
		Short: "Exporta o catálogo (json | yaml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.wb.ExportCatalog(cmd.OutOrStdout(), format)
		},
	}
	export.Flags().StringVarP(&format, "format", "f", "json", "json | yaml")

	imp := &cobra.Command{
		Use:   "import <arquivo>",
		Short: "Substitui o catálogo pelo conteúdo do arquivo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text := util.EnsureUTF8Bytes(data)
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".yaml", ".yml":
				err = a.wb.ImportCatalogYAML(cmd.Context(), []byte(text))
			default:
				err = a.wb.SaveCatalogText(cmd.Context(), text)
			}
			if err != nil {
				return err
			}
			a.out.Muted("Dados salvos com sucesso!")
			return nil
		},
	}

	cat.AddCommand(export, imp)
	return cat
}

func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert-onu [arquivo]",
		Short: "Converte a saída de 'show gpon onu state' em comandos de remoção",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			out := a.wb.ConvertONURemoval(util.EnsureUTF8Bytes(data))
			if out == "" {
				a.out.Muted("Nenhuma entrada")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) prefsCommand() *cobra.Command {
	var (
		theme  string
		window string
	)
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Mostra ou altera as preferências",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := service.PreferencesPatch{}
			if cmd.Flags().Changed("theme") {
				patch.Theme = &theme
			}
			if cmd.Flags().Changed("window") {
				patch.WindowPosition = &window
			}
			p := a.wb.Preferences()
			if patch.Theme != nil || patch.WindowPosition != nil {
				p = a.wb.UpdatePreferences(patch)
				a.wb.FlushPreferences()
			}
			a.out.Line("theme: %s", p.Theme)
			a.out.Line("window_position: %s", p.WindowPosition)
			if p.SidebarPosition != nil {
				a.out.Line("sidebar_position: %d", *p.SidebarPosition)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "light | dark")
	cmd.Flags().StringVar(&window, "window", "", "geometria LxA+X+Y")
	return cmd
}
