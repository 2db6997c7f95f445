package gpt

// MaxNameLen bounds the length of a known identifier's name.
const MaxNameLen = 36

// KnownIdentifier pairs a well-known partition type or instance GUID with a display name.
type KnownIdentifier struct {
	UUID UUID
	Name string
}

var knownIdentifiers = [...]KnownIdentifier{
	{mustParseUUID("00000000-0000-0000-0000-000000000000"), "UNUSED"},
	{mustParseUUID("c12a7328-f81f-11d2-ba4b-00a0c93ec93b"), "EFI"},
	{mustParseUUID("024dee41-33e7-11d3-9d69-0008c781f39f"), "MBR"},
	{mustParseUUID("516e7cb4-6ecf-11d6-8ff8-00022d09712b"), "FREEBSD"},
	{mustParseUUID("83bd6b9d-7f41-11dc-be0b-001560b84f0f"), "FREEBSD_BOOT"},
	{mustParseUUID("74ba7dd9-a689-11e1-bd04-00e081286acf"), "FREEBSD_NANDFS"},
	{mustParseUUID("516e7cb5-6ecf-11d6-8ff8-00022d09712b"), "FREEBSD_SWAP"},
	{mustParseUUID("516e7cb6-6ecf-11d6-8ff8-00022d09712b"), "FREEBSD_UFS"},
	{mustParseUUID("516e7cb8-6ecf-11d6-8ff8-00022d09712b"), "FREEBSD_VINUM"},
	{mustParseUUID("516e7cba-6ecf-11d6-8ff8-00022d09712b"), "FREEBSD_ZFS"},
	{mustParseUUID("9e1a2d38-c612-4316-aa26-8b49521e5a8b"), "PREP_BOOT"},
	{mustParseUUID("ebd0a0a2-b9e5-4433-87c0-68b6b72699c7"), "MS_BASIC_DATA"},
	{mustParseUUID("af9b60a0-1431-4f62-bc68-3311714a69ad"), "MS_LDM_DATA"},
	{mustParseUUID("5808c8aa-7e8f-42e0-85d2-e1e90434cfb3"), "MS_LDM_METADATA"},
	{mustParseUUID("de94bba4-06d1-4d40-a16a-bfd50179d6ac"), "MS_RECOVERY"},
	{mustParseUUID("e3c9e316-0b5c-4db8-817d-f92df00215ae"), "MS_RESERVED"},
	{mustParseUUID("e75caf8f-f680-4cee-afa3-b001e56efc2d"), "MS_SPACES"},
	{mustParseUUID("0fc63daf-8483-4772-8e79-3d69d8477de4"), "LINUX_DATA"},
	{mustParseUUID("a19d880f-05fc-4d3b-a006-743f0f84911e"), "LINUX_RAID"},
	{mustParseUUID("0657fd6d-a4ab-43c4-84e5-0933c84b4f4f"), "LINUX_SWAP"},
	{mustParseUUID("e6d6d379-f507-44c2-a23c-238f2a3df928"), "LINUX_LVM"},
	{mustParseUUID("aa31e02a-400f-11db-9590-000c2911d1b8"), "VMFS"},
	{mustParseUUID("9d275380-40ad-11db-bf97-000c2911d1b8"), "VMKDIAG"},
	{mustParseUUID("9198effc-31c0-11db-8f78-000c2911d1b8"), "VMRESERVED"},
	{mustParseUUID("381cfccc-7288-11e0-92ee-000c2911d0b2"), "VMVSANHDR"},
	{mustParseUUID("426f6f74-0000-11aa-aa11-00306543ecac"), "APPLE_BOOT"},
	{mustParseUUID("48465300-0000-11aa-aa11-00306543ecac"), "APPLE_HFS"},
	{mustParseUUID("55465300-0000-11aa-aa11-00306543ecac"), "APPLE_UFS"},
	{mustParseUUID("6a898cc3-1dd2-11b2-99a6-080020736631"), "APPLE_ZFS"},
	{mustParseUUID("52414944-0000-11aa-aa22-00306543ecac"), "APPLE_RAID"},
	{mustParseUUID("52414944-5f4f-11aa-aa22-00306543ecac"), "APPLE_RAID_OFFLINE"},
	{mustParseUUID("4c616265-6c00-11aa-aa11-00306543ecac"), "APPLE_LABEL"},
	{mustParseUUID("5265636f-7665-11aa-aa11-00306543ecac"), "APPLE_TV_RECOVERY"},
	{mustParseUUID("53746f72-6167-11aa-aa11-00306543ecac"), "APPLE_CORE_STORAGE"},
	{mustParseUUID("7c3457ef-0000-11aa-aa11-00306543ecac"), "APPLE_APFS"},
	{mustParseUUID("49f48d5a-b10e-11dc-b99b-0019d1879648"), "NETBSD_FFS"},
	{mustParseUUID("49f48d82-b10e-11dc-b99b-0019d1879648"), "NETBSD_LFS"},
	{mustParseUUID("49f48d32-b10e-11dc-b99b-0019d1879648"), "NETBSD_SWAP"},
	{mustParseUUID("49f48daa-b10e-11dc-b99b-0019d1879648"), "NETBSD_RAID"},
	{mustParseUUID("2db519c4-b10f-11dc-b99b-0019d1879648"), "NETBSD_CCD"},
	{mustParseUUID("2db519ec-b10f-11dc-b99b-0019d1879648"), "NETBSD_CGD"},
	{mustParseUUID("9d087404-1ca5-11dc-8817-01301bb8a9f5"), "DRAGONFLY_LABEL32"},
	{mustParseUUID("9d58fdbd-1ca5-11dc-8817-01301bb8a9f5"), "DRAGONFLY_SWAP"},
	{mustParseUUID("9d94ce7c-1ca5-11dc-8817-01301bb8a9f5"), "DRAGONFLY_UFS1"},
	{mustParseUUID("9dd4478f-1ca5-11dc-8817-01301bb8a9f5"), "DRAGONFLY_VINUM"},
	{mustParseUUID("dbd5211b-1ca5-11dc-8817-01301bb8a9f5"), "DRAGONFLY_CCD"},
	{mustParseUUID("3d48ce54-1d16-11dc-8696-01301bb8a9f5"), "DRAGONFLY_LABEL64"},
	{mustParseUUID("bd215ab2-1d16-11dc-8696-01301bb8a9f5"), "DRAGONFLY_LEGACY"},
	{mustParseUUID("61dc63ac-6e38-11dc-8513-01301bb8a9f5"), "DRAGONFLY_HAMMER"},
	{mustParseUUID("5cbb9ad1-862d-11dc-a94d-01301bb8a9f5"), "DRAGONFLY_HAMMER2"},
	{mustParseUUID("cab6e88e-abf3-4102-a07a-d4bb9be3c1d3"), "CHROMEOS_FIRMWARE"},
	{mustParseUUID("fe3a2a5d-4f32-41a7-b725-accc3285a309"), "CHROMEOS_KERNEL"},
	{mustParseUUID("2e0a753d-9e48-43b0-8337-b15192cb1b5e"), "CHROMEOS_RESERVED"},
	{mustParseUUID("3cb8e202-3b7e-47dd-8a3c-7ff2a13cfcec"), "CHROMEOS_ROOT"},
	{mustParseUUID("824cc7a0-36a8-11e3-890a-952519ad3f61"), "OPENBSD_DATA"},
	{mustParseUUID("6a82cb45-1dd2-11b2-99a6-080020736631"), "SOLARIS_BOOT"},
	{mustParseUUID("6a85cf4d-1dd2-11b2-99a6-080020736631"), "SOLARIS_ROOT"},
	{mustParseUUID("6a87c46f-1dd2-11b2-99a6-080020736631"), "SOLARIS_SWAP"},
	{mustParseUUID("6a8b642b-1dd2-11b2-99a6-080020736631"), "SOLARIS_BACKUP"},
	{mustParseUUID("6a8ef2e9-1dd2-11b2-99a6-080020736631"), "SOLARIS_VAR"},
	{mustParseUUID("6a90ba39-1dd2-11b2-99a6-080020736631"), "SOLARIS_HOME"},
	{mustParseUUID("6a9283a5-1dd2-11b2-99a6-080020736631"), "SOLARIS_ALTSEC"},
	{mustParseUUID("6a945a3b-1dd2-11b2-99a6-080020736631"), "SOLARIS_RESERVED"},
	{mustParseUUID("21686148-6449-6e6f-744e-656564454649"), "BIOS_BOOT"},
}

// KnownIdentifiers returns a copy of the registry.
func KnownIdentifiers() []KnownIdentifier {
	out := make([]KnownIdentifier, len(knownIdentifiers))
	copy(out, knownIdentifiers[:])
	return out
}

// Lookup returns the registered name for u.
func Lookup(u UUID) (string, bool) {
	for i := range knownIdentifiers {
		if knownIdentifiers[i].UUID == u {
			return knownIdentifiers[i].Name, true
		}
	}
	return "", false
}

// ResolveDisplayUUID returns the symbolic name of u when symbol is set and u
// is known, and the canonical string otherwise.
func ResolveDisplayUUID(u UUID, symbol bool) string {
	if symbol {
		if name, ok := Lookup(u); ok {
			return name
		}
	}
	return u.String()
}
