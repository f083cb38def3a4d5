package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"slices"
	"strings"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

const (
	profileFile   = "data/profile.yaml"
	workFile      = "data/work.yaml"
	educationFile = "data/education.yaml"
	projectsFile  = "data/projects.yaml"
)

// Profile is the site owner's summary shown on the home page.
type Profile struct {
	Name     string `yaml:"name"`
	Headline string `yaml:"headline"`
	// About is Markdown; AboutHTML holds its rendered form.
	About     string        `yaml:"about"`
	AboutHTML template.HTML `yaml:"-"`
	Location  string        `yaml:"location"`
	Email     string        `yaml:"email"`
	Links     []Link        `yaml:"links"`
}

// Link is an external profile link rendered with an icon.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Icon  string `yaml:"icon"`
}

// Job is one entry of the work history table.
type Job struct {
	Title      string    `yaml:"title"`
	Company    string    `yaml:"company"`
	URL        string    `yaml:"url"`
	Location   string    `yaml:"location"`
	Start      YearMonth `yaml:"start"`
	End        YearMonth `yaml:"end"`
	Highlights []string  `yaml:"highlights"`
	Tags       []string  `yaml:"tags"`
}

// Education is one entry of the education table.
type Education struct {
	Degree      string    `yaml:"degree"`
	Institution string    `yaml:"institution"`
	Start       YearMonth `yaml:"start"`
	End         YearMonth `yaml:"end"`
	Highlights  []string  `yaml:"highlights"`
}

// Project is one entry of the projects table.
type Project struct {
	Name     string   `yaml:"name"`
	Summary  string   `yaml:"summary"`
	URL      string   `yaml:"url"`
	Repo     string   `yaml:"repo"`
	Tags     []string `yaml:"tags"`
	Featured bool     `yaml:"featured"`
}

// Data holds every data table.
type Data struct {
	Profile   Profile
	Work      []Job
	Education []Education
	Projects  []Project
}

func loadData(fsys fs.FS, renderer *Renderer) (Data, error) {
	var data Data
	found, err := decodeTable(fsys, profileFile, &data.Profile)
	if err != nil {
		return Data{}, err
	}
	if !found {
		return Data{}, contentError(profileFile, "profile table is required", fs.ErrNotExist)
	}
	if err := validateProfile(data.Profile); err != nil {
		return Data{}, contentError(profileFile, "invalid profile", err)
	}
	if strings.TrimSpace(data.Profile.About) != "" {
		about, err := renderer.Render([]byte(data.Profile.About))
		if err != nil {
			return Data{}, contentError(profileFile, "render profile about", err)
		}
		data.Profile.AboutHTML = about
	}

	if _, err := decodeTable(fsys, workFile, &data.Work); err != nil {
		return Data{}, err
	}
	for i, job := range data.Work {
		if err := validateJob(job); err != nil {
			return Data{}, contentError(workFile, fmt.Sprintf("invalid entry %d", i+1), err)
		}
	}
	sortByRecency(data.Work, func(j Job) (YearMonth, YearMonth) { return j.Start, j.End })

	if _, err := decodeTable(fsys, educationFile, &data.Education); err != nil {
		return Data{}, err
	}
	for i, entry := range data.Education {
		if err := validateEducation(entry); err != nil {
			return Data{}, contentError(educationFile, fmt.Sprintf("invalid entry %d", i+1), err)
		}
	}
	sortByRecency(data.Education, func(e Education) (YearMonth, YearMonth) { return e.Start, e.End })

	if _, err := decodeTable(fsys, projectsFile, &data.Projects); err != nil {
		return Data{}, err
	}
	for i, project := range data.Projects {
		if strings.TrimSpace(project.Name) == "" {
			return Data{}, contentError(projectsFile, fmt.Sprintf("invalid entry %d", i+1), errors.New("name is required"))
		}
		data.Projects[i].Tags = normalizeTags(project.Tags)
	}
	slices.SortStableFunc(data.Projects, func(a, b Project) int {
		switch {
		case a.Featured == b.Featured:
			return 0
		case a.Featured:
			return -1
		default:
			return 1
		}
	})
	return data, nil
}

// decodeTable strictly decodes a YAML file into target. A missing or empty
// file leaves target untouched and reports false.
func decodeTable(fsys fs.FS, name string, target any) (bool, error) {
	raw, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, contentError(name, "read data table", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, contentError(name, "decode data table", err)
	}
	return true, nil
}

func validateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	for i, link := range p.Links {
		if strings.TrimSpace(link.Label) == "" || strings.TrimSpace(link.URL) == "" {
			return fmt.Errorf("link %d: label and url are required", i+1)
		}
	}
	return nil
}

func validateJob(j Job) error {
	if strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.Company) == "" {
		return errors.New("title and company are required")
	}
	return validatePeriod(j.Start, j.End)
}

func validateEducation(e Education) error {
	if strings.TrimSpace(e.Degree) == "" || strings.TrimSpace(e.Institution) == "" {
		return errors.New("degree and institution are required")
	}
	return validatePeriod(e.Start, e.End)
}

func validatePeriod(start, end YearMonth) error {
	if start.IsZero() {
		return errors.New("start is required")
	}
	if !end.IsZero() && end.Before(start) {
		return fmt.Errorf("end %s is before start %s", end, start)
	}
	return nil
}

// sortByRecency orders entries with ongoing ones first, then by start date,
// newest first.
func sortByRecency[T any](entries []T, period func(T) (YearMonth, YearMonth)) {
	slices.SortStableFunc(entries, func(a, b T) int {
		aStart, aEnd := period(a)
		bStart, bEnd := period(b)
		if aEnd.IsZero() != bEnd.IsZero() {
			if aEnd.IsZero() {
				return -1
			}
			return 1
		}
		return bStart.Time().Compare(aStart.Time())
	})
}

func contentError(file, message string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeContentInvalid, message+" "+file, map[string]string{"file": file}, cause)
}
