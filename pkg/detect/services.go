package detect

import (
	"regexp"
	"strings"
)

// Redis and MongoDB have no project-local config file to anchor on, so both
// gate on "used at all": the lockfile pins a client gem, or the container
// manifest declares the service image. Past the gate, the container
// manifest's image tag wins, then the shell probe, then the lockfile gem as
// a labeled last resort.

var (
	redisCLIVersionRE    = regexp.MustCompile(`redis-cli (\d[\d.]*)`)
	redisServerVersionRE = regexp.MustCompile(`v=(\d[\d.]*)`)
)

// RedisDetector detects the Redis server version used by a project.
type RedisDetector struct {
	fs  FS
	run Runner
}

func NewRedisDetector(fs FS, run Runner) *RedisDetector { return &RedisDetector{fs: fs, run: run} }

func (d *RedisDetector) Tech() Tech { return Redis }

func (d *RedisDetector) Present(dir string) bool {
	return lockMentionsGem(d.fs, dir, "redis") || composeHasImage(d.fs, dir, "redis")
}

func (d *RedisDetector) Detect(dir string) (string, bool) {
	if !d.Present(dir) {
		return "", false
	}
	if v, ok := composeImageVersion(d.fs, dir, "redis"); ok {
		return v, true
	}
	if out, ok := d.run.Run("redis-cli", "-v"); ok {
		if m := redisCLIVersionRE.FindStringSubmatch(out); m != nil {
			return m[1], true
		}
	}
	if out, ok := d.run.Run("redis-server", "--version"); ok {
		if m := redisServerVersionRE.FindStringSubmatch(out); m != nil {
			return m[1], true
		}
	}
	if v, ok := lockedGemVersion(d.fs, dir, "redis"); ok {
		return gemLabel(v, "redis"), true
	}
	return "", false
}

var (
	mongoShellVersionRE = regexp.MustCompile(`MongoDB shell version v?(\d[\d.]*)`)
	mongodVersionRE     = regexp.MustCompile(`db version v(\d[\d.]*)`)
	bareVersionRE       = regexp.MustCompile(`^v?\d+(?:\.\d+)*$`)
)

// MongoDetector detects the MongoDB server version used by a project.
type MongoDetector struct {
	fs  FS
	run Runner
}

func NewMongoDetector(fs FS, run Runner) *MongoDetector { return &MongoDetector{fs: fs, run: run} }

func (d *MongoDetector) Tech() Tech { return Mongo }

func (d *MongoDetector) Present(dir string) bool {
	return lockMentionsGem(d.fs, dir, "mongoid", "mongo") ||
		composeHasImage(d.fs, dir, "mongo", "mongodb")
}

func (d *MongoDetector) Detect(dir string) (string, bool) {
	if !d.Present(dir) {
		return "", false
	}
	if v, ok := composeImageVersion(d.fs, dir, "mongo", "mongodb"); ok {
		return v, true
	}
	if v, ok := d.shellProbe(); ok {
		return v, true
	}
	for _, gem := range []string{"mongoid", "mongo"} {
		if v, ok := lockedGemVersion(d.fs, dir, gem); ok {
			return gemLabel(v, gem), true
		}
	}
	return "", false
}

// shellProbe tries mongosh (bare numeric output), then the legacy mongo
// shell, then mongod itself.
func (d *MongoDetector) shellProbe() (string, bool) {
	if out, ok := d.run.Run("mongosh", "--version"); ok {
		if line := strings.TrimSpace(out); bareVersionRE.MatchString(line) {
			return Normalize(line), true
		}
	}
	if out, ok := d.run.Run("mongo", "--version"); ok {
		if m := mongoShellVersionRE.FindStringSubmatch(out); m != nil {
			return m[1], true
		}
	}
	if out, ok := d.run.Run("mongod", "--version"); ok {
		if m := mongodVersionRE.FindStringSubmatch(out); m != nil {
			return m[1], true
		}
	}
	return "", false
}
