package demoserver

import "github.com/raysh454/repopulse/internal/analysis"

// Fixture is the canned answer for one repository.
type Fixture struct {
	Slug        string
	Description string

	// Result is served with 200 when Status is zero.
	Result *analysis.AnalysisResult

	// Status, when set, makes the fixture answer with that error status.
	// Detail becomes the {"detail": ...} body; an empty Detail sends no body.
	Status int
	Detail string

	// Slow fixtures wait Config.SlowDelay before answering.
	Slow bool
}

// AllFixtures returns every demo repository.
func AllFixtures() []Fixture {
	return []Fixture{
		fastapiFixture(),
		reactFixture(),
		slowFixture(),
		privateFixture(),
		outageFixture(),
	}
}

func fastapiFixture() Fixture {
	return Fixture{
		Slug:        "tiangolo/fastapi",
		Description: "Healthy project with several contributors",
		Result: &analysis.AnalysisResult{
			ProjectID:     1,
			HealthScore:   92.4,
			CommitsStored: 8,
			History: []analysis.CommitRecord{
				{Date: "2024-05-11T16:20:00Z", Additions: 14, Deletions: 3, Author: "tiangolo"},
				{Date: "2024-05-10T09:02:00Z", Additions: 220, Deletions: 41, Author: "tiangolo"},
				{Date: "2024-05-09T18:45:00Z", Additions: 7, Deletions: 7, Author: "dependabot[bot]"},
				{Date: "2024-05-08T12:13:00Z", Additions: 58, Deletions: 12, Author: "Kludex"},
				{Date: "2024-05-06T08:30:00Z", Additions: 3, Deletions: 1, Author: "alejsdev"},
				{Date: "2024-05-04T21:11:00Z", Additions: 96, Deletions: 80, Author: "tiangolo"},
				{Date: "2024-05-03T14:00:00Z", Additions: 12, Deletions: 0, Author: "Kludex"},
				{Date: "2024-05-01T10:47:00Z", Additions: 31, Deletions: 9, Author: "svlandeg"},
			},
		},
	}
}

func reactFixture() Fixture {
	return Fixture{
		Slug:        "facebook/react",
		Description: "Two recent commits",
		Result: &analysis.AnalysisResult{
			ProjectID:     2,
			HealthScore:   87,
			CommitsStored: 30,
			History: []analysis.CommitRecord{
				{Date: "2024-01-02T00:00:00Z", Additions: 10, Deletions: 2, Author: "x"},
				{Date: "2024-01-01T00:00:00Z", Additions: 5, Deletions: 1, Author: "y"},
			},
		},
	}
}

func slowFixture() Fixture {
	return Fixture{
		Slug:        "slow/repo",
		Description: "Answers late; submit another repo meanwhile to watch the late answer get discarded",
		Slow:        true,
		Result: &analysis.AnalysisResult{
			ProjectID:     3,
			HealthScore:   41.5,
			CommitsStored: 1,
			History: []analysis.CommitRecord{
				{Date: "2023-11-18T07:00:00Z", Additions: 1, Deletions: 0, Author: "sleepy"},
			},
		},
	}
}

func privateFixture() Fixture {
	return Fixture{
		Slug:        "acme/private",
		Description: "Rejected with a detail message",
		Status:      403,
		Detail:      "repository is private",
	}
}

func outageFixture() Fixture {
	return Fixture{
		Slug:        "broken/upstream",
		Description: "Fails without a detail message",
		Status:      502,
	}
}
