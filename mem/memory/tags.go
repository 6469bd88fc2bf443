package memory

// Tag is the diagnostic category of an allocation.
type Tag uint8

const (
	// TagUnknown is reserved for allocations nobody classified. Using it logs
	// a warning.
	TagUnknown Tag = iota
	TagArray
	TagLinearAllocator
	TagDArray
	TagDict
	TagRingQueue
	TagBST
	TagString
	TagEngine
	TagJob
	TagTexture
	TagMaterialInstance
	TagRenderer
	TagGame
	TagTransform
	TagEntity
	TagEntityNode
	TagScene
	TagResource
	TagVulkan
	TagGPULocal
	TagBitmapFont
	TagSystemFont
	TagKeymap
	TagHashtable

	// TagMax is the number of tags. It is not a valid tag.
	TagMax
)

var tagNames = [TagMax]string{
	TagUnknown:          "UNKNOWN",
	TagArray:            "ARRAY",
	TagLinearAllocator:  "LINEAR_ALLOC",
	TagDArray:           "DARRAY",
	TagDict:             "DICT",
	TagRingQueue:        "RING_QUEUE",
	TagBST:              "BST",
	TagString:           "STRING",
	TagEngine:           "ENGINE",
	TagJob:              "JOB",
	TagTexture:          "TEXTURE",
	TagMaterialInstance: "MAT_INST",
	TagRenderer:         "RENDERER",
	TagGame:             "GAME",
	TagTransform:        "TRANSFORM",
	TagEntity:           "ENTITY",
	TagEntityNode:       "ENTITY_NODE",
	TagScene:            "SCENE",
	TagResource:         "RESOURCE",
	TagVulkan:           "VULKAN",
	TagGPULocal:         "GPU_LOCAL",
	TagBitmapFont:       "BITMAP_FONT",
	TagSystemFont:       "SYSTEM_FONT",
	TagKeymap:           "KEYMAP",
	TagHashtable:        "HASHTABLE",
}

func (t Tag) String() string {
	if t >= TagMax {
		return "INVALID"
	}
	return tagNames[t]
}

// Valid reports whether t is one of the defined tags.
func (t Tag) Valid() bool { return t < TagMax }

// ParseTag looks a tag up by its String form.
func ParseTag(s string) (Tag, bool) {
	for i, name := range tagNames {
		if name == s {
			return Tag(i), true
		}
	}
	return 0, false
}
