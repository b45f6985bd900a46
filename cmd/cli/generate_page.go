package main

// generate-page scaffolds a server-rendered page: a controller under
// domain/<name> and a template under internal/view/templates. The page is
// not mounted; the command prints the line to add to SetupCoreDomain.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	domainDir   = "domain"
	templateDir = "internal/view/templates"
)

var (
	pageNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

	errPageExists  = errors.New("page already exists")
	errInvalidName = errors.New("page name must start with a letter and contain only lowercase letters and digits")
	errAborted     = errors.New("aborted")
)

func validatePageName(ans interface{}) error {
	name, _ := ans.(string)
	if !pageNamePattern.MatchString(strings.TrimSpace(name)) {
		return errInvalidName
	}
	return nil
}

func GeneratePage(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var name string
	prompt := &survey.Input{
		Message: "Page name:",
		Help:    "Lowercase letters and digits, e.g. rules. Used as package, route and template name.",
	}
	if err := survey.AskOne(prompt, &name, survey.WithValidator(validatePageName)); err != nil {
		return translateSurveyErr(err)
	}
	name = strings.TrimSpace(name)

	var heading string
	headingPrompt := &survey.Input{
		Message: "Page heading:",
		Default: cases.Title(language.English).String(name),
	}
	if err := survey.AskOne(headingPrompt, &heading); err != nil {
		return translateSurveyErr(err)
	}

	created, err := scaffoldPage(root, name, heading)
	if err != nil {
		return err
	}

	title := cases.Title(language.English).String(name)
	fmt.Println("Page", name, "created:")
	for _, path := range created {
		fmt.Println("  ", path)
	}
	fmt.Println("Next: mount it in domain/main.go's SetupCoreDomain:")
	fmt.Printf("   appConfig.RouterService.MountController(%s.New%sController())\n", name, title)
	return nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

// scaffoldPage writes the controller and template for name below root and
// returns the created paths. Existing pages are never overwritten.
func scaffoldPage(root, name, heading string) ([]string, error) {
	if !pageNamePattern.MatchString(name) {
		return nil, errInvalidName
	}
	if strings.TrimSpace(heading) == "" {
		heading = cases.Title(language.English).String(name)
	}

	packageDir := filepath.Join(root, domainDir, name)
	templatePath := filepath.Join(root, templateDir, name+".html")

	for _, path := range []string{packageDir, templatePath} {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%w: %s", errPageExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := os.MkdirAll(packageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", packageDir, err)
	}
	if err := os.MkdirAll(filepath.Dir(templatePath), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(templatePath), err)
	}

	controllerPath := filepath.Join(packageDir, "controller.go")
	files := []struct {
		path    string
		content string
	}{
		{path: controllerPath, content: controllerTemplate(name, heading)},
		{path: templatePath, content: pageTemplate(name)},
	}

	created := make([]string, 0, len(files))
	for _, file := range files {
		if err := os.WriteFile(file.path, []byte(file.content), 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", file.path, err)
		}
		created = append(created, file.path)
	}

	return created, nil
}

func controllerTemplate(name, heading string) string {
	title := cases.Title(language.English).String(name)
	return fmt.Sprintf(`package %[1]s

import (
	"net/http"

	"github.com/akeren/betrayal-web/config/router"
)

const TemplateName = %[1]q

type PageView struct {
	Title   string
	Heading string
}

func New%[2]sController() *router.RESTController {
	return router.NewRESTController(
		"%[2]sController",
		"/%[1]s",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPageHandler(c, nil, http.MethodGet, "", show%[2]sPageHandler())
		},
	)
}

func show%[2]sPageHandler() router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		return router.PageOK(TemplateName, &PageView{Title: %[3]q, Heading: %[3]q})
	}
}
`, name, title, heading)
}

func pageTemplate(name string) string {
	return fmt.Sprintf(`{{define %q}}{{template "head" .}}
<div class="min-h-screen flex items-center justify-center bg-gray-100">
    <div class="bg-white p-8 rounded-lg shadow-lg">
        <h1 class="text-3xl font-semibold text-gray-800 mb-4">
            {{.Heading}}
        </h1>
    </div>
</div>
{{template "foot" .}}{{end}}
`, name)
}
