package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveDataDir updates the data_dir setting in the config file, preserving
// comments and formatting in other sections by editing the yaml.Node tree.
func SaveDataDir(configPath, dataDir string) error {
	return saveSettings(configPath, map[string]string{
		"data_dir": dataDir,
	})
}

// SaveRegistry updates the resolver settings in the config file.
func SaveRegistry(configPath string, reg RegistryConfig) error {
	settings := map[string]string{
		"registry.queue_size": strconv.Itoa(reg.QueueSize),
	}
	if reg.CacheTTL > 0 {
		settings["registry.cache_ttl"] = reg.CacheTTL.String()
	}
	return saveSettings(configPath, settings)
}

// SavePool updates the worker pool settings in the config file.
func SavePool(configPath string, pool PoolConfig) error {
	return saveSettings(configPath, map[string]string{
		"pool.workers":     strconv.Itoa(pool.Workers),
		"pool.queue_depth": strconv.Itoa(pool.QueueDepth),
	})
}

// saveSettings applies dotted-key scalar updates to the config file and
// writes the result atomically.
func saveSettings(configPath string, settings map[string]string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config root is not a mapping")
	}

	root := doc.Content[0]
	for key, value := range settings {
		setScalar(root, key, value)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setScalar sets a dotted-key scalar on a mapping node, creating
// intermediate mappings as needed.
func setScalar(root *yaml.Node, dottedKey, value string) {
	node := root
	keys := splitKey(dottedKey)
	for i, key := range keys {
		last := i == len(keys)-1

		var found *yaml.Node
		for j := 0; j+1 < len(node.Content); j += 2 {
			if node.Content[j].Value == key {
				found = node.Content[j+1]
				break
			}
		}

		if last {
			scalar := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
			if found != nil {
				*found = *scalar
				return
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key},
				scalar,
			)
			return
		}

		if found == nil || found.Kind != yaml.MappingNode {
			child := &yaml.Node{Kind: yaml.MappingNode}
			if found != nil {
				*found = *child
				node = found
			} else {
				node.Content = append(node.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					child,
				)
				node = child
			}
			continue
		}
		node = found
	}
}

func splitKey(dottedKey string) []string {
	var keys []string
	start := 0
	for i := 0; i < len(dottedKey); i++ {
		if dottedKey[i] == '.' {
			keys = append(keys, dottedKey[start:i])
			start = i + 1
		}
	}
	return append(keys, dottedKey[start:])
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".namevault.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
