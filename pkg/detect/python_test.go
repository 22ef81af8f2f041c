package detect

import "testing"

func TestPythonRequiresPython(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/pyproject.toml": "[project]\nname = \"app\"\nrequires-python = \">=3.11\"\n",
	}}
	d := NewPythonDetector(fs, noShell())
	v, ok := d.Detect("proj")
	if !ok || v != "3.11" {
		t.Errorf("Detect = %q, %v, want 3.11", v, ok)
	}
}

func TestPythonPoetryConstraint(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/pyproject.toml": "[tool.poetry.dependencies]\npython = \"^3.10\"\n",
	}}
	d := NewPythonDetector(fs, noShell())
	v, ok := d.Detect("proj")
	if !ok || v != "3.10" {
		t.Errorf("Detect = %q, %v, want 3.10", v, ok)
	}
}

func TestPythonRangeTakesFirstClause(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/pyproject.toml": "[project]\nrequires-python = \">=3.9,<4.0\"\n",
	}}
	d := NewPythonDetector(fs, noShell())
	if v, _ := d.Detect("proj"); v != "3.9" {
		t.Errorf("want first clause 3.9, got %q", v)
	}
}

func TestPythonPinFile(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/.python-version": "python-3.11\n",
	}}
	d := NewPythonDetector(fs, noShell())
	v, ok := d.Detect("proj")
	if !ok || v != "3.11" {
		t.Errorf("Detect = %q, %v, want 3.11", v, ok)
	}
}

func TestPythonPyprojectBeatsPinFile(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/pyproject.toml":  "[project]\nrequires-python = \">=3.12\"\n",
		"proj/.python-version": "3.11\n",
	}}
	d := NewPythonDetector(fs, noShell())
	if v, _ := d.Detect("proj"); v != "3.12" {
		t.Errorf("pyproject should win, got %q", v)
	}
}

func TestPythonVenvConfig(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"proj/requirements.txt": "flask\n",
		"proj/pyvenv.cfg":       "home = /usr/bin\nversion = 3.11.5\n",
	}}
	d := NewPythonDetector(fs, noShell())
	v, ok := d.Detect("proj")
	if !ok || v != "3.11.5" {
		t.Errorf("Detect = %q, %v, want 3.11.5", v, ok)
	}
}

func TestPythonShellFallbackOrder(t *testing.T) {
	// python3 missing, python responds.
	run := &fakeRunner{output: map[string]string{
		"python --version": "Python 3.11.5",
	}}
	fs := fakeFS{files: map[string]string{"proj/requirements.txt": "requests\n"}}
	d := NewPythonDetector(fs, run)
	v, ok := d.Detect("proj")
	if !ok || v != "3.11.5" {
		t.Errorf("Detect = %q, %v, want 3.11.5", v, ok)
	}
	if run.calls[0] != "python3 --version" {
		t.Errorf("python3 should be tried first, calls: %v", run.calls)
	}
}

func TestPythonShellGatedOnMarkers(t *testing.T) {
	run := &fakeRunner{output: map[string]string{
		"python3 --version": "Python 3.11.5",
	}}
	d := NewPythonDetector(fakeFS{files: map[string]string{}}, run)
	if _, ok := d.Detect("proj"); ok {
		t.Error("detection should fail without markers")
	}
	if len(run.calls) != 0 {
		t.Errorf("shell probe ran without markers: %v", run.calls)
	}
}
