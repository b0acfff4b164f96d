package pipeline

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"github.com/DeusData/viewcode/internal/config"
)

const headerPrefix = "// Generated by viewcode "

// Header returns the comment line that opens written output. source names
// the dump; hash is its input hash.
func Header(source, hash string) string {
	return fmt.Sprintf("%s%s from %s (xxh3:%s). Do not edit.\n", headerPrefix, Version, source, hash)
}

// HeaderHash extracts the input hash from a header line, or "".
func HeaderHash(line string) string {
	if !strings.HasPrefix(line, headerPrefix) {
		return ""
	}
	i := strings.LastIndex(line, "(xxh3:")
	if i < 0 {
		return ""
	}
	rest := line[i+len("(xxh3:"):]
	j := strings.IndexByte(rest, ')')
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// readHeaderHash returns the input hash recorded in an existing output file.
func readHeaderHash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return HeaderHash(strings.TrimRight(line, "\n"))
}

// InputHash hashes dump bytes together with everything else that changes
// the output: the tool version and the effective config.
func InputHash(data []byte, cfg *config.Config) string {
	h := xxh3.New()
	_, _ = h.Write(data)
	_, _ = h.WriteString("\x00" + Version + "\x00")
	if cfg != nil {
		if b, err := yaml.Marshal(cfg); err == nil {
			_, _ = h.Write(b)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Document renders a result for a file: the header, the summary as a
// comment block, then the code.
func Document(res *Result, header string) string {
	var b strings.Builder
	b.WriteString(header)
	if res.Summary != "" {
		if header != "" {
			b.WriteString("//\n")
		}
		for _, line := range strings.Split(strings.TrimRight(res.Summary, "\n"), "\n") {
			b.WriteString("// " + line + "\n")
		}
	}
	if b.Len() > 0 && res.Code != "" {
		b.WriteString("\n")
	}
	b.WriteString(res.Code)
	return b.String()
}
